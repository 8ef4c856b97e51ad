package server

import (
	"fmt"
	"net/http"
	"os"

	"bansou/internal/config"

	"github.com/gin-gonic/gin"
)

// NewGin はGinベースのServerインスタンスを作成する
// 振る舞いは標準ライブラリ版 (New) と同じで、フックの組み方だけが異なる
func NewGin(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		out:    os.Stdout,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// ログフック: 標準ライブラリ版と同じ [HTTP] 形式で1行出力する
	engine.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: &serverLogWriter{s: s},
		Formatter: func(p gin.LogFormatterParams) string {
			return fmt.Sprintf("[HTTP] \"%s %s %s\" %d\n",
				p.Method, p.Path, p.Request.Proto, p.StatusCode)
		},
	}))

	// レスポンス確定前フック: エラー応答を含む全レスポンスにキャッシュ抑止を付与する
	engine.Use(func(c *gin.Context) {
		c.Header("Cache-Control", cacheControlValue)
		c.Next()
	})

	// 静的ファイル配信は http.FileServer に委譲する
	// どのパスでもファイルサーバーに到達させるため NoRoute で包む
	engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.Static.RootDir))))

	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// serverLogWriter はginのログ出力をServerの出力先へ流すアダプタ
type serverLogWriter struct {
	s *Server
}

// Write はログをそのままServerの出力先に書き込む
func (w *serverLogWriter) Write(p []byte) (int, error) {
	return w.s.out.Write(p)
}

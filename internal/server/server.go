package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bansou/internal/config"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	out        io.Writer // バナー・リクエストログ・診断の出力先
}

// New は新しいServerインスタンスを作成する
// 静的ファイルの解決と配信は http.FileServer に委譲し、
// このサーバーはキャッシュ抑止とログ整形だけを上乗せする
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		out:    os.Stdout,
	}

	fileServer := http.FileServer(http.Dir(cfg.Static.RootDir))

	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      s.decorate(fileServer),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Start はサーバーを起動し、シグナルかコンテキストの終了まで待機する
func (s *Server) Start(ctx context.Context) error {
	// 起動バナーを表示
	s.printBanner()

	// バインド失敗をその場で分類するため、リスナーは明示的に確保する
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		bindErr := classifyBindError(s.config.Server.Port, err)
		if bindErr.InUse {
			s.printBindInUse(bindErr)
		}
		return bindErr
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	s.logf("配信を開始しました: http://%s/", listener.Addr())
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 処理中のリクエストは中断せず、完了を待ってからソケットを解放する
func (s *Server) Shutdown() error {
	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.logf("サーバーを停止しました")
	return nil
}

// logf は1行のメッセージを出力先に書き込む
func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// printBanner は起動時の案内を表示する
// フィードの稼働確認はしない。あくまで起動手順の案内にとどめる
func (s *Server) printBanner() {
	line := strings.Repeat("=", 60)
	s.logf("%s", line)
	s.logf("取引ダッシュボード配信サーバー")
	s.logf("%s", line)
	s.logf("配信ディレクトリ: %s", s.config.Static.RootDir)
	s.logf("ブラウザで開く:   %s", s.config.DashboardURL())
	s.logf("フィード接続先:   %s", s.config.FeedURL())
	s.logf("")
	s.logf("ダッシュボードを動かすには、別プロセスでフィードサーバーを起動してください:")
	s.logf("    cargo run --example ws_broadcast_v2 --release")
	s.logf("")
	s.logf("Ctrl+C で停止します")
}

// printBindInUse はポート競合の診断を表示する
func (s *Server) printBindInUse(bindErr *BindError) {
	s.logf("ポート %d は既に使用されています", bindErr.Port)
	s.logf("別のポートを指定して起動し直してください (例: PORT=%d)", bindErr.Port+1)
}

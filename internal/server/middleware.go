package server

import "net/http"

// cacheControlValue は全レスポンスに付与するキャッシュ抑止の指示
// 編集したファイルを即座にブラウザへ反映させるため、
// ステータスコードに関わらず無条件に付与する
const cacheControlValue = "no-store, no-cache, must-revalidate, max-age=0"

// decorate は配信ハンドラに横断的な振る舞いを重ねる
// レスポンス確定前フック（キャッシュ抑止）とログフックの2つだけで、
// パス解決やエラー応答には関与しない
func (s *Server) decorate(next http.Handler) http.Handler {
	return noCache(s.logRequests(next))
}

// noCache はレスポンス確定前にキャッシュ抑止ヘッダーを差し込むフック
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControlValue)
		next.ServeHTTP(w, r)
	})
}

// logRequests はリクエストごとに1行のログを出力するフック
// 出力形式: [HTTP] "GET /dashboard.html HTTP/1.1" 200
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logf(`[HTTP] "%s %s %s" %d`, r.Method, r.URL.Path, r.Proto, rec.status)
	})
}

// statusRecorder はレスポンスのステータスコードを記録する
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// WriteHeader はステータスコードを記録してから書き込む
func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

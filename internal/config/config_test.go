package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestConfigLoad はデフォルト設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	// 設定を読み込む
	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// 基本的な設定値を検証
	if cfg == nil {
		t.Fatal("設定がnilです")
	}

	// サーバー設定の検証
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("デフォルトホストが一致しません: got %s, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("デフォルトポートが一致しません: got %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		t.Error("読み込みタイムアウトが設定されていません")
	}

	// 配信ルートは絶対パスに解決されている
	if cfg.Static.RootDir == "" {
		t.Error("配信ルートが設定されていません")
	}
	if !filepath.IsAbs(cfg.Static.RootDir) {
		t.Errorf("配信ルートが絶対パスではありません: %s", cfg.Static.RootDir)
	}

	// フィード設定の検証
	if cfg.Feed.Host != "127.0.0.1" {
		t.Errorf("デフォルトフィードホストが一致しません: got %s, want 127.0.0.1", cfg.Feed.Host)
	}
	if cfg.Feed.Port != 9001 {
		t.Errorf("デフォルトフィードポートが一致しません: got %d, want 9001", cfg.Feed.Port)
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{
			name: "正常な設定",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8000},
				Static: StaticConfig{RootDir: "/srv/web"},
				Feed:   FeedConfig{Host: "127.0.0.1", Port: 9001},
			},
			expectErr: false,
		},
		{
			name: "無効なポート番号",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 99999}, // 無効なポート
				Static: StaticConfig{RootDir: "/srv/web"},
				Feed:   FeedConfig{Host: "127.0.0.1", Port: 9001},
			},
			expectErr: true,
		},
		{
			name: "ポート番号ゼロ",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 0},
				Static: StaticConfig{RootDir: "/srv/web"},
				Feed:   FeedConfig{Host: "127.0.0.1", Port: 9001},
			},
			expectErr: true,
		},
		{
			name: "無効なフィードポート番号",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8000},
				Static: StaticConfig{RootDir: "/srv/web"},
				Feed:   FeedConfig{Host: "127.0.0.1", Port: -1},
			},
			expectErr: true,
		},
		{
			name: "配信ルートなし",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8000},
				Static: StaticConfig{RootDir: ""}, // 空の配信ルート
				Feed:   FeedConfig{Host: "127.0.0.1", Port: 9001},
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	expected := "192.168.1.100:9090"
	actual := cfg.ServerAddress()

	if actual != expected {
		t.Errorf("サーバーアドレスが一致しません: got %s, want %s", actual, expected)
	}
}

// TestDashboardURL はダッシュボードURLの生成をテストする
// 全インターフェース待ち受け時は localhost に読み替える
func TestDashboardURL(t *testing.T) {
	testCases := []struct {
		name     string
		host     string
		port     int
		expected string
	}{
		{"全インターフェース", "0.0.0.0", 8000, "http://localhost:8000/dashboard.html"},
		{"ホスト未指定", "", 8000, "http://localhost:8000/dashboard.html"},
		{"明示的なホスト", "192.168.1.100", 8080, "http://192.168.1.100:8080/dashboard.html"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Host: tc.host, Port: tc.port}}
			if actual := cfg.DashboardURL(); actual != tc.expected {
				t.Errorf("ダッシュボードURLが一致しません: got %s, want %s", actual, tc.expected)
			}
		})
	}
}

// TestFeedURL はフィードエンドポイントURLの生成をテストする
func TestFeedURL(t *testing.T) {
	cfg := &Config{
		Feed: FeedConfig{
			Host: "127.0.0.1",
			Port: 9001,
		},
	}

	expected := "ws://127.0.0.1:9001"
	actual := cfg.FeedURL()

	if actual != expected {
		t.Errorf("フィードURLが一致しません: got %s, want %s", actual, expected)
	}
}

// TestEnvironmentVariables は環境変数の処理をテストする
// 注意: このテストは環境変数を変更するため、parallelは使わない
func TestEnvironmentVariables(t *testing.T) {
	rootDir := t.TempDir()

	// テスト用の環境変数を設定
	t.Setenv("SERVER_HOST", "test.example.com")
	t.Setenv("PORT", "9999")
	t.Setenv("STATIC_ROOT", rootDir)
	t.Setenv("FEED_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "test.example.com" {
		t.Errorf("環境変数のホストが反映されていません: got %s, want test.example.com", cfg.Server.Host)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("環境変数のポートが反映されていません: got %d, want 9999", cfg.Server.Port)
	}
	if cfg.Static.RootDir != rootDir {
		t.Errorf("環境変数の配信ルートが反映されていません: got %s, want %s", cfg.Static.RootDir, rootDir)
	}
	if cfg.Feed.Port != 9100 {
		t.Errorf("環境変数のフィードポートが反映されていません: got %d, want 9100", cfg.Feed.Port)
	}
}

// TestConfigFile はYAML設定ファイルの読み込みをテストする
func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bansou.yaml")

	content := []byte(`server:
  host: 192.0.2.10
  port: 8123
feed:
  port: 9100
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "192.0.2.10" {
		t.Errorf("設定ファイルのホストが反映されていません: got %s, want 192.0.2.10", cfg.Server.Host)
	}
	if cfg.Server.Port != 8123 {
		t.Errorf("設定ファイルのポートが反映されていません: got %d, want 8123", cfg.Server.Port)
	}
	if cfg.Feed.Port != 9100 {
		t.Errorf("設定ファイルのフィードポートが反映されていません: got %d, want 9100", cfg.Feed.Port)
	}
	// ファイルに書かれていない値はデフォルトのまま
	if cfg.Feed.Host != "127.0.0.1" {
		t.Errorf("フィードホストのデフォルト値が失われています: got %s", cfg.Feed.Host)
	}
}

// TestEnvOverridesConfigFile は環境変数が設定ファイルより優先されることをテストする
func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bansou.yaml")

	content := []byte(`server:
  port: 8123
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "8456")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Port != 8456 {
		t.Errorf("環境変数が設定ファイルを上書きしていません: got %d, want 8456", cfg.Server.Port)
	}
}

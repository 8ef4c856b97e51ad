package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
// Load で一度だけ構築され、以降は変更されない
type Config struct {
	Server ServerConfig `yaml:"server"`
	Static StaticConfig `yaml:"static"`
	Feed   FeedConfig   `yaml:"feed"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// StaticConfig は静的ファイル配信の設定
type StaticConfig struct {
	RootDir string `yaml:"root_dir"` // 配信ルートディレクトリ
}

// FeedConfig はリアルタイムフィード（WebSocketサーバー）の接続先
// 起動バナーの案内表示にのみ使われ、このサーバーから接続・検証はしない
type FeedConfig struct {
	Host string `yaml:"host"` // フィードのホスト
	Port int    `yaml:"port"` // フィードのポート番号
}

// Load は設定を読み込む
// 優先順位: デフォルト値 → YAML設定ファイル → 環境変数
func Load() (*Config, error) {
	// デフォルト設定を作成
	cfg := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8000,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Static: StaticConfig{
			RootDir: "",
		},
		Feed: FeedConfig{
			Host: "127.0.0.1",
			Port: 9001,
		},
	}

	// 設定ファイルがあれば上書きする
	if err := cfg.loadFile(configFilePath()); err != nil {
		return nil, err
	}

	// 環境変数で上書きする
	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("PORT", cfg.Server.Port)
	cfg.Static.RootDir = getEnvOrDefault("STATIC_ROOT", cfg.Static.RootDir)
	cfg.Feed.Host = getEnvOrDefault("FEED_HOST", cfg.Feed.Host)
	cfg.Feed.Port = getEnvAsIntOrDefault("FEED_PORT", cfg.Feed.Port)

	// 配信ルートを絶対パスに解決する
	// 起動場所に左右されないよう、未指定時は実行ファイルの隣を基準にする
	if cfg.Static.RootDir == "" {
		cfg.Static.RootDir = defaultRootDir()
	}
	abs, err := filepath.Abs(cfg.Static.RootDir)
	if err != nil {
		return nil, fmt.Errorf("配信ルートの解決に失敗: %w", err)
	}
	cfg.Static.RootDir = abs

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// フィード設定の検証
	if c.Feed.Port < 1 || c.Feed.Port > 65535 {
		return fmt.Errorf("無効なフィードポート番号: %d", c.Feed.Port)
	}

	// 静的ファイル設定の検証
	// ディレクトリの実在は確認しない。存在しないパスへのリクエストは
	// ファイルサーバーが404で応答する
	if c.Static.RootDir == "" {
		return fmt.Errorf("配信ルートディレクトリが設定されていません")
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DashboardURL はブラウザで開くダッシュボードのURLを返す
// 全インターフェースで待ち受けている場合は localhost に読み替える
func (c *Config) DashboardURL() string {
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d/dashboard.html", host, c.Server.Port)
}

// FeedURL はリアルタイムフィードのWebSocketエンドポイントを返す
func (c *Config) FeedURL() string {
	return fmt.Sprintf("ws://%s:%d", c.Feed.Host, c.Feed.Port)
}

// loadFile はYAML設定ファイルがあれば読み込んで設定を上書きする
// ファイルが存在しないのは正常（デフォルト値のまま動作する）
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}
	return nil
}

// configFilePath は設定ファイルのパスを返す
func configFilePath() string {
	return getEnvOrDefault("CONFIG_FILE", "bansou.yaml")
}

// defaultRootDir は配信ルートの既定値を解決する
// 実行ファイルと同じ場所に置かれた web ディレクトリを優先し、
// 開発中（go run など）はカレントディレクトリの web を使う
func defaultRootDir() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "web")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "web"
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

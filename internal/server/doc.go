// Package server は、ダッシュボード開発用HTTPサーバーを管理します。
//
// このパッケージは、静的ファイル（dashboard.html / app.js）の配信に
// 横断的な振る舞いを上乗せする薄いシェルです。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - 全レスポンスへのキャッシュ抑止ヘッダーの付与
//   - [HTTP] プレフィックス付きリクエストログの出力
//   - 起動バナーとポート競合診断の表示
//   - グレースフルシャットダウン
//
// 仕様:
//   - パス解決・Content-Type推定・404応答は net/http の FileServer に委譲
//   - 標準ライブラリ版 (New) と Gin版 (NewGin) の2つの組み立てを提供
//   - リアルタイムフィード（ws://127.0.0.1:9001）は別プロセスであり、
//     このサーバーは案内を表示するだけで接続・検証はしない
package server

package server

import (
	"errors"
	"fmt"
	"syscall"
)

// Windows がポート競合時に返すエラーコード (WSAEADDRINUSE)
const errnoAddrInUseWindows = 10048

// BindError は待ち受けソケットの確保失敗を分類したエラー
type BindError struct {
	Port  int   // 確保しようとしたポート番号
	Err   error // 元のエラー
	InUse bool  // ポート競合かどうか
}

// Error はエラーメッセージを返す
func (e *BindError) Error() string {
	if e.InUse {
		return fmt.Sprintf("ポート %d は既に使用されています: %v", e.Port, e.Err)
	}
	return fmt.Sprintf("ポート %d の待ち受けに失敗: %v", e.Port, e.Err)
}

// Unwrap は元のエラーを返す
func (e *BindError) Unwrap() error {
	return e.Err
}

// classifyBindError はバインド失敗をポート競合とそれ以外に分類する
// 競合以外の失敗は握りつぶさず、そのまま呼び出し元に伝播させる
func classifyBindError(port int, err error) *BindError {
	return &BindError{
		Port:  port,
		Err:   err,
		InUse: isAddrInUse(err),
	}
}

// isAddrInUse はエラーがポート競合かどうかを判定する
// POSIX系は EADDRINUSE、Windows は WSAEADDRINUSE (10048) を返す
func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && uintptr(errno) == errnoAddrInUseWindows {
		return true
	}
	return false
}

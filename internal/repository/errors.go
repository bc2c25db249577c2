package repository

import "errors"

var (
	// 行が存在しない
	ErrNotFound = errors.New("not found")
	// unique制約違反（登録レースや二重revokeの最終ガード）
	ErrConflict = errors.New("conflict")
)

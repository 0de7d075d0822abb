// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Error'lar sabit değer olarak tanımlanır, karşılaştırma errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// fmt.Errorf("%w: detay", pkg.ErrBadRequest) ile sarmalanan error'lar da
// aynı şekilde match eder (error chain).
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları döner, handler katmanı HTTP status code'larına map'ler.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrRateLimited   = errors.New("rate limited")
	ErrInternal      = errors.New("internal error")
)

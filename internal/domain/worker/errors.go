package worker

import "errors"

var (
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrWorkerNotInSite  = errors.New("worker not found for this site")
	ErrWorkerCodeExists = errors.New("worker code already exists")
)

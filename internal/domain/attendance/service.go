package attendance

import "context"

type AttendanceService interface {
	ListBySite(ctx context.Context, siteID string, date string) ([]AttendanceResponse, error)
	Mark(ctx context.Context, req MarkRequest) (AttendanceResponse, error)
	BulkMark(ctx context.Context, req BulkMarkRequest) (BulkMarkResponse, error)
}

package mongodb

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	sitesCollection      = "sites"
	workersCollection    = "workers"
	attendanceCollection = "attendances"
	paymentsCollection   = "payments"
)

type siteDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Location  *string   `bson:"location,omitempty"`
	Notes     *string   `bson:"notes,omitempty"`
	CreatedBy string    `bson:"created_by"`
	Deleted   bool      `bson:"deleted"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newSiteDocument(s site.Site) siteDocument {
	return siteDocument{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		Notes:     s.Notes,
		CreatedBy: s.CreatedBy,
		Deleted:   s.Deleted,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (d siteDocument) toDomain() site.Site {
	return site.Site{
		ID:        d.ID,
		Name:      d.Name,
		Location:  d.Location,
		Notes:     d.Notes,
		CreatedBy: d.CreatedBy,
		Deleted:   d.Deleted,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type workerDocument struct {
	ID         string          `bson:"_id"`
	WorkerCode string          `bson:"worker_code"`
	SiteID     string          `bson:"site_id"`
	Name       string          `bson:"name"`
	Role       string          `bson:"role"`
	WageRate   bson.Decimal128 `bson:"wage_rate"`
	WageType   string          `bson:"wage_type"`
	Phone      string          `bson:"phone"`
	Address    string          `bson:"address"`
	CreatedBy  string          `bson:"created_by"`
	CreatedAt  time.Time       `bson:"created_at"`
	UpdatedAt  time.Time       `bson:"updated_at"`
}

func newWorkerDocument(w worker.Worker) (workerDocument, error) {
	rate, err := toDecimal128(w.WageRate)
	if err != nil {
		return workerDocument{}, err
	}
	return workerDocument{
		ID:         w.ID,
		WorkerCode: w.WorkerCode,
		SiteID:     w.SiteID,
		Name:       w.Name,
		Role:       w.Role,
		WageRate:   rate,
		WageType:   string(w.WageType),
		Phone:      w.Phone,
		Address:    w.Address,
		CreatedBy:  w.CreatedBy,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}, nil
}

func (d workerDocument) toDomain() worker.Worker {
	return worker.Worker{
		ID:         d.ID,
		WorkerCode: d.WorkerCode,
		SiteID:     d.SiteID,
		Name:       d.Name,
		Role:       d.Role,
		WageRate:   fromDecimal128(d.WageRate),
		WageType:   worker.WageType(d.WageType),
		Phone:      d.Phone,
		Address:    d.Address,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type attendanceDocument struct {
	ID          string     `bson:"_id"`
	WorkerID    string     `bson:"worker_id"`
	SiteID      string     `bson:"site_id"`
	Date        string     `bson:"date"`
	Status      string     `bson:"status"`
	HoursWorked float64    `bson:"hours_worked"`
	CheckIn     *time.Time `bson:"check_in,omitempty"`
	CheckOut    *time.Time `bson:"check_out,omitempty"`
	Notes       *string    `bson:"notes,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

func (d attendanceDocument) toDomain() attendance.Record {
	return attendance.Record{
		ID:          d.ID,
		WorkerID:    d.WorkerID,
		SiteID:      d.SiteID,
		Date:        d.Date,
		Status:      attendance.Status(d.Status),
		HoursWorked: d.HoursWorked,
		CheckIn:     d.CheckIn,
		CheckOut:    d.CheckOut,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type paymentDocument struct {
	ID          string          `bson:"_id"`
	WorkerID    string          `bson:"worker_id"`
	SiteID      string          `bson:"site_id"`
	Amount      bson.Decimal128 `bson:"amount"`
	Date        string          `bson:"date"`
	PaymentType string          `bson:"payment_type"`
	Notes       *string         `bson:"notes,omitempty"`
	CreatedBy   string          `bson:"created_by"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
}

func newPaymentDocument(p payment.Payment) (paymentDocument, error) {
	amount, err := toDecimal128(p.Amount)
	if err != nil {
		return paymentDocument{}, err
	}
	return paymentDocument{
		ID:          p.ID,
		WorkerID:    p.WorkerID,
		SiteID:      p.SiteID,
		Amount:      amount,
		Date:        p.Date,
		PaymentType: string(p.PaymentType),
		Notes:       p.Notes,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d paymentDocument) toDomain() payment.Payment {
	return payment.Payment{
		ID:          d.ID,
		WorkerID:    d.WorkerID,
		SiteID:      d.SiteID,
		Amount:      fromDecimal128(d.Amount),
		Date:        d.Date,
		PaymentType: payment.Type(d.PaymentType),
		Notes:       d.Notes,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	return bson.ParseDecimal128(d.String())
}

// fromDecimal128 maps NaN and infinities to zero.
func fromDecimal128(d bson.Decimal128) decimal.Decimal {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}

// dateRange adds an inclusive date filter when from and to are set.
func dateRange(filter bson.M, from, to string) bson.M {
	if from != "" && to != "" {
		filter["date"] = bson.M{"$gte": from, "$lte": to}
	}
	return filter
}

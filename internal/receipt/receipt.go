package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Settlement is the archived proof of a commission payout. EmployerShare
// lives here and in the admin notification only.
type Settlement struct {
	CommissionID      uint      `json:"commission_id"`
	WorkerID          uint      `json:"worker_id"`
	Period            string    `json:"period"`
	AppointmentsCount int       `json:"appointments_count"`
	TotalRevenue      int64     `json:"total_revenue"`
	CommissionRate    float64   `json:"commission_rate"`
	CommissionAmount  int64     `json:"commission_amount"`
	EmployerShare     int64     `json:"employer_share"`
	PaidAt            time.Time `json:"paid_at"`
	PaidBy            uint      `json:"paid_by"`
}

func FromCommission(c *models.Commission, employerShare int64) Settlement {
	s := Settlement{
		CommissionID:      c.ID,
		WorkerID:          c.WorkerID,
		Period:            c.Period,
		AppointmentsCount: c.AppointmentsCount,
		TotalRevenue:      c.TotalRevenue,
		CommissionRate:    c.CommissionRate,
		CommissionAmount:  c.CommissionAmount,
		EmployerShare:     employerShare,
	}
	if c.PaidAt != nil {
		s.PaidAt = *c.PaidAt
	}
	if c.PaidBy != nil {
		s.PaidBy = *c.PaidBy
	}
	return s
}

type Archive interface {
	Save(ctx context.Context, s Settlement) (string, error)
}

type S3Archive struct {
	client *s3.Client
	bucket string
}

func NewS3Archive(region, accessKey, secretKey, bucket string) *S3Archive {
	cfg := aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	}
	return &S3Archive{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}
}

func Key(s Settlement) string {
	return fmt.Sprintf("settlements/worker-%d/%s/%d-%s.json",
		s.WorkerID, s.Period, s.CommissionID, uuid.NewString())
}

func (a *S3Archive) Save(ctx context.Context, s Settlement) (string, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	key := Key(s)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

type NopArchive struct{}

func (NopArchive) Save(context.Context, Settlement) (string, error) { return "", nil }

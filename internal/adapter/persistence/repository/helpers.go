package repository

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"orderhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func int64ToString(v int64) string {
	return strconv.FormatInt(v, 10)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

// infraErr tags an underlying SDK failure so use cases can tell outages apart
// from domain conditions.
func infraErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, interfaces.ErrInfrastructure, err)
}

// conditionErr maps DynamoDB's conditional-write failures onto the repository
// taxonomy. For transactions the per-item cancellation reasons decide which
// item lost; quoteIdx marks the item whose ConditionalCheckFailed means the
// quote already existed (-1 when no such item is in the transaction).
func conditionErr(op string, err error, quoteIdx int) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("%s: %w", op, interfaces.ErrConditionFailed)
	}

	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for i, reason := range tce.CancellationReasons {
			if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
				continue
			}
			if i == quoteIdx {
				return fmt.Errorf("%s: %w", op, interfaces.ErrQuoteExists)
			}
			return fmt.Errorf("%s: %w", op, interfaces.ErrConditionFailed)
		}
	}
	return infraErr(op, err)
}

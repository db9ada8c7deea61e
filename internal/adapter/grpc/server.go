package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/usecase/comparison"
	"github.com/simaogato/goldflow-backend/internal/usecase/normalizer"
	"github.com/simaogato/goldflow-backend/internal/usecase/projection"
)

// Server implements the SimulationService gRPC server
type Server struct {
	ComparisonService *comparison.ComparisonService
	ProjectionService *projection.ProjectionService
}

var _ SimulationServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	comparisonService *comparison.ComparisonService,
	projectionService *projection.ProjectionService,
) *Server {
	return &Server{
		ComparisonService: comparisonService,
		ProjectionService: projectionService,
	}
}

// CompareSavings handles the CompareSavings RPC
//
// Request fields:
//   - start_date, end_date: "YYYY-MM-DD" (required)
//   - initial_capital, monthly_contribution, annual_rate_percent: number or decimal string
//   - include_series: bool, defaults to true
//
// Response fields: run_id, winner, final_gold_value, final_deposit_value, total_contributed,
// gold_return_percent, deposit_return_percent, difference, last_gram_price (decimal strings)
// and series (list of {date, gold_value, deposit_value, contributed}).
func (s *Server) CompareSavings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Parse the date range
	start, err := dateField(req, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := dateField(req, "end_date")
	if err != nil {
		return nil, err
	}

	// Parse amounts
	initialCapital, err := numberField(req, "initial_capital")
	if err != nil {
		return nil, err
	}
	monthlyContribution, err := numberField(req, "monthly_contribution")
	if err != nil {
		return nil, err
	}
	annualRate, err := numberField(req, "annual_rate_percent")
	if err != nil {
		return nil, err
	}

	// Call usecase service
	result, err := s.ComparisonService.Compare(ctx, comparison.CompareInput{
		Start:               start,
		End:                 end,
		InitialCapital:      initialCapital,
		MonthlyContribution: monthlyContribution,
		AnnualRatePercent:   annualRate,
	})
	if err != nil {
		return nil, mapError(err)
	}

	// Build response
	summary := result.Summary()
	fields := map[string]interface{}{
		"run_id":                 uuid.NewString(),
		"winner":                 string(result.Winner),
		"final_gold_value":       money(result.FinalAssetValue),
		"final_deposit_value":    money(result.FinalCashValue),
		"total_contributed":      money(result.FinalContributed),
		"gold_return_percent":    money(summary.AssetReturnPercent),
		"deposit_return_percent": money(summary.CashReturnPercent),
		"difference":             money(summary.Difference),
		"last_gram_price":        money(result.LastCompositePrice),
	}

	if boolField(req, "include_series", true) {
		series := make([]interface{}, 0, len(result.Entries))
		for _, entry := range result.Entries {
			series = append(series, map[string]interface{}{
				"date":          entry.Date.Format(time.DateOnly),
				"gold_value":    entry.AssetValue,
				"deposit_value": entry.CashValue,
				"contributed":   entry.CumulativeContributed,
			})
		}
		fields["series"] = series
	}

	return newResponse(fields)
}

// ProjectCompounding handles the ProjectCompounding RPC
//
// Request fields:
//   - initial_principal: number or decimal string
//   - rate_percent + rate_basis ("monthly" | "annual")
//   - flow + flow_basis ("monthly" | "annual")
//   - term + term_unit ("months" | "years")
//   - include_points: bool, defaults to true
//
// Response fields: run_id, monthly_rate_percent, annual_rate_percent, monthly_flow, annual_flow,
// horizon_months, final_balance, total_contributed, net_gain and points (list of {month, balance, contributed}).
func (s *Server) ProjectCompounding(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	principal, err := numberField(req, "initial_principal")
	if err != nil {
		return nil, err
	}
	rate, err := numberField(req, "rate_percent")
	if err != nil {
		return nil, err
	}
	flow, err := numberField(req, "flow")
	if err != nil {
		return nil, err
	}
	term, err := numberField(req, "term")
	if err != nil {
		return nil, err
	}
	if math.Abs(term) > domain.MaxHorizonMonths {
		return nil, status.Errorf(codes.InvalidArgument, "term cannot exceed %d months", domain.MaxHorizonMonths)
	}
	if term != math.Trunc(term) {
		return nil, status.Errorf(codes.InvalidArgument, "term must be a whole number")
	}

	rateBasis, err := normalizer.ParseBasis(stringField(req, "rate_basis", "annual"))
	if err != nil {
		return nil, mapError(err)
	}
	flowBasis, err := normalizer.ParseBasis(stringField(req, "flow_basis", "monthly"))
	if err != nil {
		return nil, mapError(err)
	}
	termUnit, err := normalizer.ParseTermUnit(stringField(req, "term_unit", "years"))
	if err != nil {
		return nil, mapError(err)
	}

	// Call usecase service
	outcome, err := s.ProjectionService.Project(ctx, projection.ProjectInput{
		InitialPrincipal: principal,
		Input: normalizer.Input{
			RatePercent: rate,
			RateBasis:   rateBasis,
			Flow:        flow,
			FlowBasis:   flowBasis,
			Term:        int(term),
			TermUnit:    termUnit,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}

	// Build response
	result := outcome.Result
	fields := map[string]interface{}{
		"run_id":               uuid.NewString(),
		"monthly_rate_percent": decimal.NewFromFloat(outcome.Normalized.MonthlyRate * 100).Round(4).String(),
		"annual_rate_percent":  money(outcome.Normalized.AnnualRatePercent),
		"monthly_flow":         money(outcome.Normalized.MonthlyFlow),
		"annual_flow":          money(outcome.Normalized.AnnualFlow),
		"horizon_months":       outcome.Normalized.HorizonMonths,
		"final_balance":        money(result.FinalBalance),
		"total_contributed":    money(result.TotalContributed),
		"net_gain":             money(result.NetGain),
	}

	if boolField(req, "include_points", true) {
		points := make([]interface{}, 0, len(result.Points))
		for _, p := range result.Points {
			points = append(points, map[string]interface{}{
				"month":       p.Month,
				"balance":     p.Balance,
				"contributed": p.Contributed,
			})
		}
		fields["points"] = points
	}

	return newResponse(fields)
}

// newResponse converts a plain map into a Struct response
func newResponse(fields map[string]interface{}) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}

// money renders an amount with two decimal places
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// numberField reads a numeric field given either as a JSON number or as a decimal string
// A missing field reads as zero; NaN and infinities are rejected
func numberField(req *structpb.Struct, name string) (float64, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, nil
	}

	var f float64
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		f = kind.NumberValue
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", name, err)
		}
		f = d.InexactFloat64()
	case *structpb.Value_NullValue:
		return 0, nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: expected number", name)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a finite number", name)
	}
	return f, nil
}

// dateField reads a required "YYYY-MM-DD" field
func dateField(req *structpb.Struct, name string) (time.Time, error) {
	raw := req.GetFields()[name].GetStringValue()
	if raw == "" {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", name, err)
	}
	return t, nil
}

func stringField(req *structpb.Struct, name, fallback string) string {
	if v := req.GetFields()[name].GetStringValue(); v != "" {
		return v
	}
	return fallback
}

func boolField(req *structpb.Struct, name string, fallback bool) bool {
	v, ok := req.GetFields()[name]
	if !ok {
		return fallback
	}
	if b, ok := v.GetKind().(*structpb.Value_BoolValue); ok {
		return b.BoolValue
	}
	return fallback
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidParameters), errors.Is(err, domain.ErrInvalidDateRange):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrDataUnavailable), errors.Is(err, domain.ErrEmptySeries):
		return status.Errorf(codes.NotFound, "no data: %s", err.Error())
	case errors.Is(err, domain.ErrNumericOverflow):
		return status.Errorf(codes.OutOfRange, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", fmt.Sprint(err))
}

package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/manel-hris/attendance-payroll/internal/domain/employee"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/domain/report"
	"github.com/manel-hris/attendance-payroll/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	attendance   punch.AttendanceReader
}

func NewReportService(employeeRepo employee.EmployeeRepository, attendance punch.AttendanceReader) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		attendance:   attendance,
	}
}

// Compute runs the engine: load the directory slice, derive each employee's
// attendance, classify once, then apply the kind's strategy.
func (s *ReportServiceImpl) Compute(ctx context.Context, q report.Query) ([]report.Row, error) {
	if _, ok := strategies[q.Kind]; !ok {
		return nil, report.ErrUnknownKind
	}

	// Security payment covers the security sub-section whatever filter is set.
	filter := q.Filter
	if q.Kind == report.KindSecurityPayment {
		filter = employee.Filter{}
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for %s: %w", q.Date.Format(validator.DateLayout), err)
	}
	if len(employees) == 0 {
		return []report.Row{}, nil
	}

	codes := make([]string, 0, len(employees))
	for _, e := range employees {
		codes = append(codes, strings.TrimSpace(e.ID))
	}

	attendance, err := s.attendance.AttendanceForDate(ctx, q.Date, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance for %s: %w", q.Date.Format(validator.DateLayout), err)
	}

	records := make([]report.Record, 0, len(employees))
	for _, e := range employees {
		records = append(records, Classify(e, attendance[strings.TrimSpace(e.ID)]))
	}

	return build(q.Kind, q, records)
}

func (s *ReportServiceImpl) ComputePaymentSheet(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	return s.computeLive(ctx, req, report.KindPaymentSheet)
}

func (s *ReportServiceImpl) ComputePresentStatus(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	return s.computeLive(ctx, req, report.KindPresentStatus)
}

func (s *ReportServiceImpl) ComputeNightBill(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	return s.computeLive(ctx, req, report.KindNightBill)
}

func (s *ReportServiceImpl) ComputeSecurityPayment(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	req.Section, req.SubSection, req.Category = "", "", ""
	return s.computeLive(ctx, req, report.KindSecurityPayment)
}

func (s *ReportServiceImpl) computeLive(ctx context.Context, req report.ReportRequest, kind report.Kind) (report.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}
	if err := s.ValidateFilter(ctx, req.Filter()); err != nil {
		return report.ReportResponse{}, err
	}

	rows, err := s.Compute(ctx, report.Query{
		Kind:   kind,
		Date:   req.ForDate(),
		Filter: req.Filter(),
		Status: req.StatusFilter(),
	})
	if err != nil {
		return report.ReportResponse{}, err
	}

	slog.Debug("report computed", "kind", kind, "date", req.Date, "rows", len(rows))
	return report.NewReportResponse(req, kind, report.SourceLive, rows), nil
}

// ValidateFilter rejects filter values that match no stored placement.
func (s *ReportServiceImpl) ValidateFilter(ctx context.Context, filter employee.Filter) error {
	if filter == (employee.Filter{}) {
		return nil
	}

	lookups, err := s.Lookups(ctx, filter.Section)
	if err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if filter.Section != "" && !validator.IsInSlice(filter.Section, lookups.Sections) {
		errs = append(errs, validator.ValidationError{
			Field:   "section",
			Message: fmt.Sprintf("unknown section %q", filter.Section),
		})
	}
	if filter.SubSection != "" && !validator.IsInSlice(filter.SubSection, lookups.SubSections) {
		errs = append(errs, validator.ValidationError{
			Field:   "sub_section",
			Message: fmt.Sprintf("unknown sub_section %q", filter.SubSection),
		})
	}
	if filter.Category != "" && !validator.IsInSlice(filter.Category, lookups.Categories) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("unknown category %q", filter.Category),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Lookups loads the filter choices concurrently. Sub-sections are narrowed
// to section when one is given.
func (s *ReportServiceImpl) Lookups(ctx context.Context, section string) (report.LookupsResponse, error) {
	var resp report.LookupsResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sections, err := s.employeeRepo.DistinctSections(gctx)
		if err != nil {
			return fmt.Errorf("failed to load sections: %w", err)
		}
		resp.Sections = sections
		return nil
	})
	g.Go(func() error {
		subSections, err := s.employeeRepo.DistinctSubSections(gctx, section)
		if err != nil {
			return fmt.Errorf("failed to load sub-sections: %w", err)
		}
		resp.SubSections = subSections
		return nil
	})
	g.Go(func() error {
		categories, err := s.employeeRepo.DistinctCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		resp.Categories = categories
		return nil
	})
	g.Go(func() error {
		count, err := s.employeeRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		resp.EmployeeCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.LookupsResponse{}, err
	}
	return resp, nil
}

package employee

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Salary structure constants. Basic salary is never stored; it is derived
// from gross after removing the fixed allowance block.
var (
	FixedAllowances = decimal.NewFromInt(2450)
	BasicDivisor    = decimal.NewFromFloat(1.5)
	MonthlyOTHours  = decimal.NewFromInt(208)
	OTMultiplier    = decimal.NewFromInt(2)
	DaysPerMonth    = decimal.NewFromInt(30)
)

type Role string

const (
	RoleWorker Role = "worker"
	RoleStaff  Role = "staff"
)

type Employee struct {
	ID          string
	Name        string
	Designation string
	Section     string
	SubSection  string
	Category    string
	Grade       string
	GrossSalary decimal.Decimal

	// Night bill of the designation
	NightBill decimal.Decimal

	// Resolved once at load time by Resolve
	Role Role
}

// ResolveRole classifies a free-text category: anything mentioning "worker"
// ("Worker", "Workers", "Factory Worker") is a worker, the rest is staff.
func ResolveRole(category string) Role {
	if strings.Contains(strings.ToLower(category), "worker") {
		return RoleWorker
	}
	return RoleStaff
}

// Resolve fills the derived classification fields of e.
func Resolve(e Employee) Employee {
	e.Role = ResolveRole(e.Category)
	return e
}

func (e Employee) IsWorker() bool {
	return e.Role == RoleWorker
}

// IsSecurity reports placement in security by section or sub-section.
func (e Employee) IsSecurity() bool {
	return isNamed(e.Section, "security") || isNamed(e.SubSection, "security")
}

func (e Employee) InSecuritySubSection() bool {
	return isNamed(e.SubSection, "security")
}

func (e Employee) IsCleaner() bool {
	return isNamed(e.SubSection, "cleaner")
}

func (e Employee) BasicSalary() decimal.Decimal {
	return BasicSalary(e.GrossSalary)
}

func isNamed(value, name string) bool {
	return strings.EqualFold(strings.TrimSpace(value), name)
}

// BasicSalary derives the monthly basic: (gross - 2450) / 1.5.
// A gross below the allowance block yields a negative basic.
func BasicSalary(gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(FixedAllowances).Div(BasicDivisor)
}

// OTRate is the hourly overtime rate: basic / 208 * 2.
func OTRate(basic decimal.Decimal) decimal.Decimal {
	return basic.Div(MonthlyOTHours).Mul(OTMultiplier)
}

// DailyBasic is one day's basic: basic / 30.
func DailyBasic(basic decimal.Decimal) decimal.Decimal {
	return basic.Div(DaysPerMonth)
}

package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	cases := []struct {
		category string
		want     Role
	}{
		{"Worker", RoleWorker},
		{"WORKERS", RoleWorker},
		{"Factory worker", RoleWorker},
		{"Staff", RoleStaff},
		{"Management", RoleStaff},
		{"", RoleStaff},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolveRole(c.category), "category %q", c.category)
	}
}

func TestBasicSalary(t *testing.T) {
	basic := BasicSalary(decimal.NewFromInt(15000))
	assert.Equal(t, "8366.67", basic.Round(2).String())

	// deterministic for repeated calls
	assert.True(t, basic.Equal(BasicSalary(decimal.NewFromInt(15000))))

	// gross below the allowance block is out of domain but must not panic
	assert.True(t, BasicSalary(decimal.Zero).IsNegative())
}

func TestOTRateAndDailyBasic(t *testing.T) {
	basic := BasicSalary(decimal.NewFromInt(15000))
	assert.Equal(t, "80.45", OTRate(basic).Round(2).String())
	assert.Equal(t, "278.89", DailyBasic(basic).Round(2).String())
}

func TestPlacementPredicates(t *testing.T) {
	guard := Resolve(Employee{Section: "Admin", SubSection: " security ", Category: "Staff"})
	assert.True(t, guard.IsSecurity())
	assert.True(t, guard.InSecuritySubSection())
	assert.False(t, guard.IsWorker())

	sectionOnly := Employee{Section: "SECURITY", SubSection: "Gate"}
	assert.True(t, sectionOnly.IsSecurity())
	assert.False(t, sectionOnly.InSecuritySubSection())

	cleaner := Resolve(Employee{SubSection: "Cleaner", Category: "Worker"})
	assert.True(t, cleaner.IsCleaner())
	assert.True(t, cleaner.IsWorker())
	assert.False(t, Employee{SubSection: "Cleaners"}.IsCleaner())
}

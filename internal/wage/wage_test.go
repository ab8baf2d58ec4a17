package wage_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/wage"
)

func hours(h float64) *float64 { return &h }

func TestCredit_FullDay_EqualsDailyWage(t *testing.T) {
	credit := wage.Credit(domain.AttendanceFullDay, nil, 700)
	assert.True(t, credit.Equal(decimal.NewFromInt(700)))
}

func TestCredit_HalfDay_EqualsHalfWage(t *testing.T) {
	credit := wage.Credit(domain.AttendanceHalfDay, nil, 700)
	assert.True(t, credit.Equal(decimal.NewFromInt(350)))
}

func TestCredit_HalfDay_OddWage_KeepsFraction(t *testing.T) {
	// GIVEN: a 701-rupee daily wage
	// WHEN: a half day is credited
	// THEN: the credit keeps the 0.5 fraction; rounding is the caller's job
	credit := wage.Credit(domain.AttendanceHalfDay, nil, 701)
	assert.True(t, credit.Equal(decimal.NewFromFloat(350.5)))
	assert.Equal(t, int64(351), wage.RoundRupees(credit))
}

func TestCredit_CustomHours_ProRatedByEightHourDay(t *testing.T) {
	// 6 hours at 800/day = 6 * 100 = 600
	credit := wage.Credit(domain.AttendanceCustom, hours(6), 800)
	assert.True(t, credit.Equal(decimal.NewFromInt(600)))
}

func TestCredit_CustomHours_NilHours_EarnsNothing(t *testing.T) {
	credit := wage.Credit(domain.AttendanceCustom, nil, 800)
	assert.True(t, credit.IsZero())
}

func TestCredit_Absent_EarnsNothing(t *testing.T) {
	credit := wage.Credit(domain.AttendanceAbsent, nil, 700)
	assert.True(t, credit.IsZero())
}

func TestCredit_UnknownKind_EarnsNothing(t *testing.T) {
	credit := wage.Credit(domain.AttendanceKind("HOLIDAY"), nil, 700)
	assert.True(t, credit.IsZero())
}

func TestDescription_PerKind(t *testing.T) {
	assert.Equal(t, "Full Day Work", wage.Description(domain.AttendanceFullDay, nil))
	assert.Equal(t, "Half Day Work", wage.Description(domain.AttendanceHalfDay, nil))
	assert.Equal(t, "Absent", wage.Description(domain.AttendanceAbsent, nil))
	assert.Equal(t, "Custom Hours (6.5h)", wage.Description(domain.AttendanceCustom, hours(6.5)))
	assert.Equal(t, "Custom Hours (0h)", wage.Description(domain.AttendanceCustom, nil))
}

func TestEffectiveDays_WeighsHalfDays(t *testing.T) {
	effective := wage.EffectiveDays(20, 4)
	assert.True(t, effective.Equal(decimal.NewFromInt(22)))
}

func TestPeriodEarnings_CombinesAllComponents(t *testing.T) {
	// GIVEN: 10 full days, 2 half days and 4 custom hours at 800/day
	// THEN: 10*800 + 2*400 + 4*100 = 9200
	earned := wage.PeriodEarnings(10, 2, 4, 800)
	assert.True(t, earned.Equal(decimal.NewFromInt(9200)))
}

func TestPeriodEarnings_Empty_IsZero(t *testing.T) {
	assert.True(t, wage.PeriodEarnings(0, 0, 0, 700).IsZero())
}

func TestRoundRupees_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(351), wage.RoundRupees(decimal.NewFromFloat(350.5)))
	assert.Equal(t, int64(350), wage.RoundRupees(decimal.NewFromFloat(350.4)))
	assert.Equal(t, int64(-351), wage.RoundRupees(decimal.NewFromFloat(-350.5)))
}

package dataset

import (
	"fmt"
	"time"

	"vgrid/internal/grid"
)

var (
	roles       = []string{"Developer", "Designer", "Manager", "Analyst", "Engineer"}
	departments = []string{"Engineering", "Design", "Product", "Marketing", "Sales"}
	statuses    = []string{"Active", "Inactive", "On Leave"}
)

// EmployeeColumns returns the demo column set; id and name are pinned left.
func EmployeeColumns() []grid.Column {
	return []grid.Column{
		{ID: "id", Header: "ID", Width: 8, Pinned: grid.PinLeft, Align: grid.AlignRight, Kind: grid.KindInteger},
		{ID: "name", Header: "Name", Width: 17, Pinned: grid.PinLeft},
		{ID: "email", Header: "Email", Width: 28},
		{ID: "role", Header: "Role", Width: 12},
		{ID: "department", Header: "Department", Width: 14},
		{ID: "salary", Header: "Salary", Width: 12, Align: grid.AlignRight, Kind: grid.KindCurrency},
		{ID: "status", Header: "Status", Width: 11, Kind: grid.KindStatus},
		{ID: "startDate", Header: "Start Date", Width: 12, Kind: grid.KindDate},
	}
}

// Employees is a synthetic dataset whose rows are derived from their index,
// so only materialized rows cost anything.
type Employees struct {
	n    int
	seed uint64
}

// NewEmployees returns n employees. The same seed yields the same salaries.
func NewEmployees(n int, seed uint64) *Employees {
	return &Employees{n: max(0, n), seed: seed}
}

// Columns implements Source.
func (e *Employees) Columns() []grid.Column {
	return EmployeeColumns()
}

// Len implements Source.
func (e *Employees) Len() int {
	return e.n
}

// Value implements Source.
func (e *Employees) Value(row int, field string) Value {
	if row < 0 || row >= e.n {
		return nil
	}
	i := row
	switch field {
	case "id":
		return int64(i + 1)
	case "name":
		return fmt.Sprintf("Employee %d", i+1)
	case "email":
		return fmt.Sprintf("employee%d@company.com", i+1)
	case "role":
		return roles[i%len(roles)]
	case "department":
		return departments[i%len(departments)]
	case "salary":
		return int64(mix(e.seed^uint64(i))%100000) + 50000
	case "status":
		return statuses[i%len(statuses)]
	case "startDate":
		return time.Date(2020+i/10000, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC)
	default:
		return nil
	}
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

package domain

import "time"

// Quarter is a calendar quarter, Q1 through Q4.
type Quarter int

const (
	Q1 Quarter = iota + 1
	Q2
	Q3
	Q4
)

var Quarters = []Quarter{Q1, Q2, Q3, Q4}

func (q Quarter) String() string {
	switch q {
	case Q1:
		return "Q1"
	case Q2:
		return "Q2"
	case Q3:
		return "Q3"
	case Q4:
		return "Q4"
	default:
		return "Q?"
	}
}

// Months returns the calendar months of the quarter.
func (q Quarter) Months() []time.Month {
	first := time.Month(3*(int(q)-1) + 1)
	return []time.Month{first, first + 1, first + 2}
}

// QuarterOf returns the quarter a month belongs to.
func QuarterOf(m time.Month) Quarter {
	return Quarter((int(m)-1)/3 + 1)
}

type Season int

const (
	Spring Season = iota + 1
	Summer
	Autumn
	Winter
)

// Seasons lists the seasons in report order.
var Seasons = []Season{Spring, Summer, Autumn, Winter}

func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Winter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// Months returns the three months of the season. Winter spans the year end.
func (s Season) Months() []time.Month {
	switch s {
	case Spring:
		return []time.Month{time.March, time.April, time.May}
	case Summer:
		return []time.Month{time.June, time.July, time.August}
	case Autumn:
		return []time.Month{time.September, time.October, time.November}
	case Winter:
		return []time.Month{time.December, time.January, time.February}
	default:
		return nil
	}
}

// SeasonOf returns the season a month belongs to.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.September, time.October, time.November:
		return Autumn
	default:
		return Winter
	}
}

// MonthLabel renders a month as its three-letter abbreviation.
func MonthLabel(m time.Month) string {
	return m.String()[:3]
}

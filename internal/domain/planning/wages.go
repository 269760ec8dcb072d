package planning

// AllocateWages splits the labor budget (laborRequired * demand) across workers
// in proportion to hours worked, writing each worker's Wage in place.
// With zero total hours every wage is zero. Otherwise the wages sum to the budget.
func AllocateWages(workers []Worker, laborRequired int, demand float64) []Worker {
	budget := float64(laborRequired) * demand

	totalHours := 0.0
	for _, w := range workers {
		totalHours += w.HoursWorked
	}

	if totalHours == 0 {
		for i := range workers {
			workers[i].Wage = 0
		}
		return workers
	}

	rate := budget / totalHours
	for i := range workers {
		workers[i].Wage = rate * workers[i].HoursWorked
	}
	return workers
}

// WageRate returns the per-hour rate AllocateWages would apply, or zero when nobody worked.
func WageRate(workers []Worker, laborRequired int, demand float64) float64 {
	totalHours := 0.0
	for _, w := range workers {
		totalHours += w.HoursWorked
	}
	if totalHours == 0 {
		return 0
	}
	return float64(laborRequired) * demand / totalHours
}

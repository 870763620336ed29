package querycache

// Cached key families. Planner events appear under three families
// because the day view, week view, and dashboard each scope the same
// table differently.
const (
	KeyBusinesses    = "businesses"
	KeyDepartments   = "departments"
	KeyTransactions  = "transactions"
	KeySavings       = "savings"
	KeyInvestments   = "investments"
	KeyGoals         = "goals"
	KeyPlannerEvents = "planner-events"
	KeyWeekEvents    = "week-events"
	KeyTodayEvents   = "today-events"
	KeyProfile       = "profile"
)

// Table names as mutation controllers refer to them.
const (
	TableBusinesses     = "businesses"
	TableDepartments    = "departments"
	TableTransactions   = "transactions"
	TableSavingsTargets = "savings_targets"
	TableInvestments    = "investments"
	TableGoals          = "goals"
	TablePlannerEvents  = "planner_events"
	TableProfiles       = "profiles"
)

// dependents maps a mutated table to the key families that must be
// dropped for the owning user. Keeping the fan-out in one table makes
// it auditable instead of scattering invalidation calls per handler.
var dependents = map[string][]string{
	TableBusinesses:     {KeyBusinesses},
	TableDepartments:    {KeyDepartments},
	TableTransactions:   {KeyTransactions},
	TableSavingsTargets: {KeySavings},
	TableInvestments:    {KeyInvestments},
	TableGoals:          {KeyGoals},
	TablePlannerEvents:  {KeyPlannerEvents, KeyWeekEvents, KeyTodayEvents},
	TableProfiles:       {KeyProfile},
}

// Dependents returns the key families invalidated by a mutation on
// the given table.
func Dependents(table string) []string {
	return dependents[table]
}

// InvalidateEntity drops every cached query that depends on the given
// table for one user.
func (c *Cache) InvalidateEntity(table string, userID uint) {
	for _, family := range Dependents(table) {
		c.Invalidate(Key(family, userID))
	}
}

package leaguestandings

const (
	queryType = "LeagueStandings"
)

// Query represents the input for the standings of a period formatted YYYY-MM.
type Query struct {
	Period string
}

// BuildQuery creates a new Query for the period.
func BuildQuery(period string) Query {
	return Query{
		Period: period,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

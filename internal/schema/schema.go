// Package schema lists the gorm models backing the database tables, in
// dependency order. Postgres gets its schema from the SQL migrations; sqlite
// databases are auto-migrated from these models.
package schema

import (
	leaderboardModel "github.com/festy23/futamigo/internal/leaderboard/model"
	matchModel "github.com/festy23/futamigo/internal/match/model"
	participantModel "github.com/festy23/futamigo/internal/participant/model"
	predictionModel "github.com/festy23/futamigo/internal/prediction/model"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	teamModel "github.com/festy23/futamigo/internal/team/model"
)

// Models returns one pointer per table.
func Models() []any {
	return []any{
		&teamModel.Team{},
		&roundModel.Round{},
		&matchModel.Match{},
		&participantModel.Participant{},
		&predictionModel.Prediction{},
		&leaderboardModel.Entry{},
	}
}

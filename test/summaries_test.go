//go:build integration

package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/coachstats/internal/middleware"
	"github.com/2beens/coachstats/internal/trainingstats/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) seedPlayer(playerID string) {
	_, err := s.DB.Exec(`DELETE FROM training_log WHERE player_id = $1`, playerID)
	require.NoError(s.T(), err)
	_, err = s.DB.Exec(`DELETE FROM skill_assessment WHERE player_id = $1`, playerID)
	require.NoError(s.T(), err)

	logRows := []struct {
		date       any
		hours      float64
		feeling    string
		focus      string
		difficulty string
		details    any
	}{
		{date: "2024-05-14", hours: 1.5, feeling: "4", focus: `["serve","dinks"]`, difficulty: `["lobs"]`, details: `{"result":8,"target":10}`},
		{date: "2024-05-13", hours: 2, feeling: "2", focus: `["serve"]`, difficulty: `lobs`, details: nil},
		{date: "2024-05-02", hours: 1, feeling: "great", focus: `["drives"]`, difficulty: ``, details: `{"result":12,"target":10}`},
		{date: nil, hours: 3, feeling: "5", focus: `[]`, difficulty: ``, details: nil},
	}
	for _, r := range logRows {
		_, err := s.DB.Exec(
			`INSERT INTO training_log (player_id, date, hours, feeling, training_focus, difficulty, session_type, exercise_details)
				VALUES ($1, $2, $3, $4, $5, $6, 'training', $7);`,
			playerID, r.date, r.hours, r.feeling, r.focus, r.difficulty, r.details,
		)
		require.NoError(s.T(), err)
	}

	assessmentRows := []struct {
		createdAt string
		kind      string
		skills    string
	}{
		{createdAt: "2024-03-01T10:00:00Z", kind: "first_time", skills: `{"serve":2}`},
		{createdAt: "2024-04-01T10:00:00Z", kind: "periodic", skills: `{"serve":5,"dinks":{"total":4,"maxScore":5}}`},
		{createdAt: "2024-05-01T10:00:00Z", kind: "periodic", skills: `{"serve":8,"unknown_skill":3}`},
	}
	for _, r := range assessmentRows {
		_, err := s.DB.Exec(
			`INSERT INTO skill_assessment (player_id, created_at, type, skills_data) VALUES ($1, $2, $3, $4);`,
			playerID, r.createdAt, r.kind, r.skills,
		)
		require.NoError(s.T(), err)
	}
}

func (s *IntegrationTestSuite) getJSON(path string, withToken bool, out any) int {
	req, err := http.NewRequest("GET", serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	if withToken {
		req.Header.Set(middleware.TokenHeader, testToken)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	if resp.StatusCode == http.StatusOK && out != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, out))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) TestLogbookSummary() {
	s.seedPlayer("it-player-1")

	path := "/players/it-player-1/logbook/summary?now=2024-05-15T18:30:00Z"
	require.Equal(s.T(), http.StatusUnauthorized, s.getJSON(path, false, nil))

	var logbookSummary summary.LogbookSummary
	require.Equal(s.T(), http.StatusOK, s.getJSON(path, true, &logbookSummary))

	t := s.T()
	assert.Equal(t, 4, logbookSummary.TotalRecords)
	assert.Equal(t, 1, logbookSummary.SkippedRecords)
	assert.Equal(t, 3, logbookSummary.TotalSessions)
	assert.Equal(t, 4.5, logbookSummary.TotalHours)
	assert.Equal(t, 3.5, logbookSummary.WeekHours)
	assert.Equal(t, 2, logbookSummary.WeekSessions)
	require.NotEmpty(t, logbookSummary.StrongSkills)
	assert.Equal(t, "serve", logbookSummary.StrongSkills[0].Tag)
	assert.Equal(t, 2, logbookSummary.StrongSkills[0].Count)
	require.NotEmpty(t, logbookSummary.WeakSkills)
	assert.Equal(t, "lobs", logbookSummary.WeakSkills[0].Tag)
	assert.Equal(t, 2, logbookSummary.Targets.Tracked)
	assert.Equal(t, 1, logbookSummary.Targets.Accomplished)

	// second read is served from the redis cache and must be identical
	var cached summary.LogbookSummary
	require.Equal(t, http.StatusOK, s.getJSON(path, true, &cached))
	assert.Equal(t, logbookSummary.RecommendationScore, cached.RecommendationScore)
	assert.Equal(t, logbookSummary.WeeklyHours, cached.WeeklyHours)
}

func (s *IntegrationTestSuite) TestProgressSummary() {
	s.seedPlayer("it-player-2")

	var progressSummary summary.ProgressSummary
	require.Equal(s.T(), http.StatusOK, s.getJSON("/players/it-player-2/progress/summary", true, &progressSummary))

	t := s.T()
	assert.Equal(t, 3, progressSummary.TotalRecords)
	assert.Equal(t, 2, progressSummary.Assessments)
	assert.Equal(t, 3.0, progressSummary.LastTwoDelta["serve"])
	assert.Equal(t, 7, progressSummary.PerSkillAverage["serve"])
	assert.Equal(t, 80.0, progressSummary.LatestSummary["dinks"].Percentage)
	assert.NotContains(t, progressSummary.PerSkillAverage, "unknown_skill")
}

func (s *IntegrationTestSuite) TestPostLogbookSummary() {
	body := []byte(`{"entries":[{"id":"x1","date":"2024-05-14","hours":2,"feeling":5}],"now":"2024-05-15"}`)
	req, err := http.NewRequest("POST", fmt.Sprintf("%s/summaries/logbook", serverEndpoint), bytes.NewReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TokenHeader, testToken)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var logbookSummary summary.LogbookSummary
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&logbookSummary))
	assert.Equal(s.T(), 2.0, logbookSummary.WeekHours)
	assert.Equal(s.T(), 50, logbookSummary.RecommendationScore)
}

func (s *IntegrationTestSuite) TestInvalidPlayer() {
	require.Equal(s.T(), http.StatusBadRequest, s.getJSON("/players/bad%20id/progress/summary", true, nil))
}

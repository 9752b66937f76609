package domain

// MatchResult is computed per request and never stored.
type MatchResult struct {
	JobID              int64   `json:"job_id"`
	MatchingSkillCount int     `json:"matching_skill_count"`
	TotalSkillCount    int     `json:"total_skill_count"`
	MatchPercentage    float64 `json:"match_percentage"`
}

// SkillSet is a set of skill ids.
type SkillSet map[int64]struct{}

func NewSkillSet(ids ...int64) SkillSet {
	s := make(SkillSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SkillSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Score measures how many of a job's required skills the candidate holds.
// A job without required skills scores 0 so it never looks like a perfect match.
func Score(jobID int64, candidate, required SkillSet) MatchResult {
	res := MatchResult{JobID: jobID, TotalSkillCount: len(required)}
	for id := range required {
		if candidate.Contains(id) {
			res.MatchingSkillCount++
		}
	}
	if res.TotalSkillCount > 0 {
		res.MatchPercentage = 100 * float64(res.MatchingSkillCount) / float64(res.TotalSkillCount)
	}
	return res
}

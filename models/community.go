package models

import "fmt"

// SportCommunity groups one college's players of one sport. Its id is the
// composite "<collegeId>.<sportId>" string the clients already use.
type SportCommunity struct {
	ID        string `json:"id"`
	CollegeID string `json:"college_id"`
	SportID   int    `json:"sport_id"`
	Name      string `json:"name"`
}

// CommunityID builds the composite community id.
func CommunityID(collegeID string, sportID int) string {
	return fmt.Sprintf("%s.%d", collegeID, sportID)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sama64/nerdeala25/models"
)

// DefaultCourseName is used for a course that arrives without a name.
const DefaultCourseName = "Classroom course"

type rawCourse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section"`
	Room    string `json:"room"`
}

type rawParticipant struct {
	UserID  string `json:"userId"`
	Profile struct {
		EmailAddress string `json:"emailAddress"`
		PhotoURL     string `json:"photoUrl"`
		Name         struct {
			FullName   string `json:"fullName"`
			GivenName  string `json:"givenName"`
			FamilyName string `json:"familyName"`
		} `json:"name"`
	} `json:"profile"`
}

type rawDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

type rawTimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
	Nanos   int `json:"nanos"`
}

type rawCourseWork struct {
	ID                        string        `json:"id"`
	Title                     string        `json:"title"`
	Description               string        `json:"description"`
	WorkType                  string        `json:"workType"`
	State                     string        `json:"state"`
	DueDate                   *rawDate      `json:"dueDate"`
	DueTime                   *rawTimeOfDay `json:"dueTime"`
	AlternateLink             string        `json:"alternateLink"`
	MaxPoints                 *float64      `json:"maxPoints"`
	CreationTime              string        `json:"creationTime"`
	UpdateTime                string        `json:"updateTime"`
	AssigneeMode              string        `json:"assigneeMode"`
	IndividualStudentsOptions *struct {
		StudentIDs []string `json:"studentIds"`
	} `json:"individualStudentsOptions"`
}

type rawAttachment struct {
	DriveFile *struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		AlternateLink string `json:"alternateLink"`
	} `json:"driveFile"`
	Link *struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"link"`
	YouTubeVideo *struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		AlternateLink string `json:"alternateLink"`
	} `json:"youTubeVideo"`
	Form *struct {
		FormURL string `json:"formUrl"`
		Title   string `json:"title"`
	} `json:"form"`
}

type rawSubmission struct {
	ID                string   `json:"id"`
	CourseWorkID      string   `json:"courseWorkId"`
	UserID            string   `json:"userId"`
	State             string   `json:"state"`
	Late              *bool    `json:"late"`
	UpdateTime        string   `json:"updateTime"`
	AssignedGrade     *float64 `json:"assignedGrade"`
	DraftGrade        *float64 `json:"draftGrade"`
	SubmissionHistory []struct {
		StateHistory *struct {
			State          string `json:"state"`
			StateTimestamp string `json:"stateTimestamp"`
		} `json:"stateHistory"`
	} `json:"submissionHistory"`
	AssignmentSubmission *struct {
		Attachments []rawAttachment `json:"attachments"`
	} `json:"assignmentSubmission"`
}

func parseCourse(raw json.RawMessage) (models.RemoteCourse, bool) {
	var c rawCourse
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" {
		return models.RemoteCourse{}, false
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = DefaultCourseName
	}

	return models.RemoteCourse{
		ID:      c.ID,
		Name:    name,
		Section: c.Section,
		Room:    c.Room,
	}, true
}

func parseParticipant(raw json.RawMessage, role models.Role) (models.RemoteParticipant, bool) {
	var p rawParticipant
	if err := json.Unmarshal(raw, &p); err != nil || p.UserID == "" {
		return models.RemoteParticipant{}, false
	}

	name := strings.TrimSpace(p.Profile.Name.FullName)
	if name == "" {
		name = strings.TrimSpace(p.Profile.Name.GivenName + " " + p.Profile.Name.FamilyName)
	}

	photo := strings.TrimSpace(p.Profile.PhotoURL)
	if strings.HasPrefix(photo, "//") {
		photo = "https:" + photo
	}

	return models.RemoteParticipant{
		UserID:   p.UserID,
		Email:    strings.TrimSpace(p.Profile.EmailAddress),
		FullName: name,
		PhotoURL: photo,
		Role:     role,
	}, true
}

func parseCourseWork(raw json.RawMessage, courseID string) (models.Assignment, bool) {
	var w rawCourseWork
	if err := json.Unmarshal(raw, &w); err != nil || w.ID == "" || w.Title == "" {
		return models.Assignment{}, false
	}

	a := models.Assignment{
		ID:            w.ID,
		CourseID:      courseID,
		Title:         w.Title,
		Description:   w.Description,
		WorkType:      w.WorkType,
		State:         w.State,
		DueAt:         parseDue(w.DueDate, w.DueTime),
		AlternateLink: w.AlternateLink,
		MaxPoints:     w.MaxPoints,
		CreatedTime:   parseTimestamp(w.CreationTime),
		UpdatedTime:   parseTimestamp(w.UpdateTime),
		AssigneeMode:  models.AssigneeMode(w.AssigneeMode),
	}

	if w.IndividualStudentsOptions != nil {
		a.AssigneeUserIDs = append([]string(nil), w.IndividualStudentsOptions.StudentIDs...)
	}
	if a.AssigneeMode == models.AssigneeAllStudents || a.AssigneeUserIDs == nil {
		a.AssigneeUserIDs = []string{}
	}

	return a, true
}

func parseSubmission(raw json.RawMessage, courseID string) (models.Submission, bool) {
	var s rawSubmission
	if err := json.Unmarshal(raw, &s); err != nil || s.ID == "" || s.CourseWorkID == "" || s.UserID == "" {
		return models.Submission{}, false
	}

	sub := models.Submission{
		ID:            s.ID,
		CourseID:      courseID,
		CourseWorkID:  s.CourseWorkID,
		GoogleUserID:  s.UserID,
		State:         s.State,
		Late:          s.Late != nil && *s.Late,
		AssignedGrade: s.AssignedGrade,
		DraftGrade:    s.DraftGrade,
		UpdatedTime:   parseTimestamp(s.UpdateTime),
		Attachments:   []models.Attachment{},
	}

	for _, h := range s.SubmissionHistory {
		if h.StateHistory == nil || h.StateHistory.State != models.SubmissionStateTurnedIn {
			continue
		}
		ts := parseTimestamp(h.StateHistory.StateTimestamp)
		if ts != nil && (sub.TurnedInAt == nil || ts.After(*sub.TurnedInAt)) {
			sub.TurnedInAt = ts
		}
	}

	if s.AssignmentSubmission != nil {
		for _, att := range s.AssignmentSubmission.Attachments {
			if parsed, ok := parseAttachment(att); ok {
				sub.Attachments = append(sub.Attachments, parsed)
			}
		}
	}

	return sub, true
}

func parseAttachment(a rawAttachment) (models.Attachment, bool) {
	switch {
	case a.DriveFile != nil:
		return models.Attachment{Kind: "drive_file", ID: a.DriveFile.ID, Title: a.DriveFile.Title, URL: a.DriveFile.AlternateLink}, true
	case a.Link != nil:
		return models.Attachment{Kind: "link", Title: a.Link.Title, URL: a.Link.URL}, true
	case a.YouTubeVideo != nil:
		return models.Attachment{Kind: "youtube_video", ID: a.YouTubeVideo.ID, Title: a.YouTubeVideo.Title, URL: a.YouTubeVideo.AlternateLink}, true
	case a.Form != nil:
		return models.Attachment{Kind: "form", Title: a.Form.Title, URL: a.Form.FormURL}, true
	default:
		return models.Attachment{}, false
	}
}

// parseDue builds a due instant only from a complete date. A missing time of
// day means midnight UTC.
func parseDue(d *rawDate, t *rawTimeOfDay) *time.Time {
	if d == nil || d.Year == nil || d.Month == nil || d.Day == nil {
		return nil
	}
	if *d.Year <= 0 || *d.Month < 1 || *d.Month > 12 || *d.Day < 1 || *d.Day > 31 {
		return nil
	}

	var tod rawTimeOfDay
	if t != nil {
		tod = *t
	}

	due := time.Date(*d.Year, time.Month(*d.Month), *d.Day, tod.Hours, tod.Minutes, tod.Seconds, tod.Nanos, time.UTC)
	return &due
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

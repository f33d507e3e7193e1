// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sama64/nerdeala25/internal/config"
	"github.com/sama64/nerdeala25/internal/logger"
	"github.com/sama64/nerdeala25/models"
)

// Field projections requested for each collection.
const (
	participantFields = "%s(userId,profile(emailAddress,photoUrl,name(fullName,givenName,familyName))),nextPageToken"
	courseWorkFields  = "courseWork(id,title,description,workType,state,dueDate,dueTime,alternateLink,maxPoints," +
		"creationTime,updateTime,assigneeMode,individualStudentsOptions/studentIds),nextPageToken"
	submissionFields = "studentSubmissions(id,courseWorkId,userId,state,late,updateTime,assignedGrade,draftGrade," +
		"submissionHistory,assignmentSubmission(attachments)),nextPageToken"
)

type classroomAdapter struct {
	fetcher  Fetcher
	pageSize int
	logger   *logger.Logger
}

// NewClassroomAdapter builds the typed catalog listings on top of fetcher.
func NewClassroomAdapter(fetcher Fetcher, cfg config.Adapter, log *logger.Logger) ClassroomAdapter {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 200
	}
	return &classroomAdapter{fetcher: fetcher, pageSize: pageSize, logger: log}
}

// ListActiveCourses implements [ClassroomAdapter]. Teacher courses come first;
// a course listed under both roles keeps its first position.
func (c *classroomAdapter) ListActiveCourses(ctx context.Context, token string) ([]models.RemoteCourse, error) {
	teaching, err := c.listCoursesByRole(ctx, token, "teacherId")
	if err != nil {
		return nil, err
	}
	attending, err := c.listCoursesByRole(ctx, token, "studentId")
	if err != nil {
		return nil, err
	}

	courses := make([]models.RemoteCourse, 0, len(teaching)+len(attending))
	index := make(map[string]int, cap(courses))
	merge := func(list []models.RemoteCourse, teacher bool) {
		for _, course := range list {
			if teacher {
				course.IsTeacher = true
			} else {
				course.IsStudent = true
			}

			i, seen := index[course.ID]
			if !seen {
				index[course.ID] = len(courses)
				courses = append(courses, course)
				continue
			}
			courses[i].IsTeacher = courses[i].IsTeacher || course.IsTeacher
			courses[i].IsStudent = courses[i].IsStudent || course.IsStudent
		}
	}
	merge(teaching, true)
	merge(attending, false)

	return courses, nil
}

func (c *classroomAdapter) listCoursesByRole(ctx context.Context, token, roleParam string) ([]models.RemoteCourse, error) {
	query := url.Values{}
	query.Set("courseStates", "ACTIVE")
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set(roleParam, "me")

	res, err := c.fetcher.Fetch(ctx, FetchRequest{
		Path:     "/courses",
		Query:    query,
		Token:    token,
		ItemsKey: "courses",
	})
	if err != nil {
		return nil, err
	}

	return parseListing(ctx, res, "course", parseCourse).Items, nil
}

// ListParticipants implements [ClassroomAdapter].
func (c *classroomAdapter) ListParticipants(ctx context.Context, token, courseID string, role models.Role, etag *string) (Listing[models.RemoteParticipant], error) {
	collection, err := participantCollection(role)
	if err != nil {
		return Listing[models.RemoteParticipant]{}, err
	}

	query := c.pageQuery()
	query.Set(fieldsParam, fmt.Sprintf(participantFields, collection))

	res, err := c.fetcher.Fetch(ctx, FetchRequest{
		Path:     coursePath(courseID, collection),
		Query:    query,
		Token:    token,
		ETag:     etag,
		ItemsKey: collection,
	})
	if err != nil {
		return Listing[models.RemoteParticipant]{}, err
	}

	return parseListing(ctx, res, "participant", func(raw json.RawMessage) (models.RemoteParticipant, bool) {
		return parseParticipant(raw, role)
	}), nil
}

// ListAssignments implements [ClassroomAdapter].
func (c *classroomAdapter) ListAssignments(ctx context.Context, token, courseID string, etag *string) (Listing[models.Assignment], error) {
	query := c.pageQuery()
	query.Set(fieldsParam, courseWorkFields)

	res, err := c.fetcher.Fetch(ctx, FetchRequest{
		Path:     coursePath(courseID, "courseWork"),
		Query:    query,
		Token:    token,
		ETag:     etag,
		ItemsKey: "courseWork",
	})
	if err != nil {
		return Listing[models.Assignment]{}, err
	}

	return parseListing(ctx, res, "coursework", func(raw json.RawMessage) (models.Assignment, bool) {
		return parseCourseWork(raw, courseID)
	}), nil
}

// ListSubmissions implements [ClassroomAdapter].
func (c *classroomAdapter) ListSubmissions(ctx context.Context, token, courseID string, etag *string) (Listing[models.Submission], error) {
	query := c.pageQuery()
	query.Set(fieldsParam, submissionFields)

	res, err := c.fetcher.Fetch(ctx, FetchRequest{
		Path:     coursePath(courseID, "courseWork/-/studentSubmissions"),
		Query:    query,
		Token:    token,
		ETag:     etag,
		ItemsKey: "studentSubmissions",
	})
	if err != nil {
		return Listing[models.Submission]{}, err
	}

	return parseListing(ctx, res, "submission", func(raw json.RawMessage) (models.Submission, bool) {
		return parseSubmission(raw, courseID)
	}), nil
}

func (c *classroomAdapter) pageQuery() url.Values {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	return query
}

func participantCollection(role models.Role) (string, error) {
	switch role {
	case models.RoleStudent:
		return "students", nil
	case models.RoleTeacher:
		return "teachers", nil
	default:
		return "", fmt.Errorf("unknown participant role %q", role)
	}
}

func coursePath(courseID, collection string) string {
	return "/courses/" + url.PathEscape(courseID) + "/" + collection
}

// parseListing converts raw items, dropping the ones parse rejects.
func parseListing[T any](ctx context.Context, res FetchResult, kind string, parse func(json.RawMessage) (T, bool)) Listing[T] {
	log := logger.FromContext(ctx)

	items := make([]T, 0, len(res.Items))
	for _, raw := range res.Items {
		item, ok := parse(raw)
		if !ok {
			log.Debug().Str("kind", kind).Msg("skipping malformed record")
			continue
		}
		items = append(items, item)
	}

	return Listing[T]{
		Items:       items,
		ETag:        res.ETag,
		NotModified: res.NotModified,
		Forbidden:   res.Forbidden,
	}
}

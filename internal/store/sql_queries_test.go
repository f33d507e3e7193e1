// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sama64/nerdeala25/models"
)

func Test_buildDeleteAbsentParticipantsQuery(t *testing.T) {
	tests := []struct {
		name       string
		roles      []models.Role
		seen       []string
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:  "success: one role, two seen ids",
			roles: []models.Role{models.RoleStudent},
			seen:  []string{"u1", "u2"},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				require.Contains(t, q, "delete from course_participants")
				require.Contains(t, q, "course_id = $1")
				require.Contains(t, q, "role in ($2)")
				// squirrel generates NOT IN ($3,$4) for a slice.
				require.Contains(t, q, "google_user_id not in ($3,$4)")

				require.Equal(t, []any{"c1", "student", "u1", "u2"}, args)
			},
		},
		{
			name:  "success: both roles",
			roles: []models.Role{models.RoleTeacher, models.RoleStudent},
			seen:  []string{"u1"},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, strings.ToLower(query), "role in ($2,$3)")
				require.Equal(t, []any{"c1", "teacher", "student", "u1"}, args)
			},
		},
		{
			name:  "success: empty seen deletes every row of the role",
			roles: []models.Role{models.RoleTeacher},
			seen:  []string{},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				require.NotContains(t, q, "not in")
				require.Contains(t, q, "(1=1)")
				require.Equal(t, []any{"c1", "teacher"}, args)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildDeleteAbsentParticipantsQuery(statementBuilder(DriverPostgres), "c1", tt.roles, tt.seen)
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func Test_buildDeleteAbsentAssignmentsQuery(t *testing.T) {
	query, args, err := buildDeleteAbsentAssignmentsQuery(statementBuilder(DriverPostgres), "c1", []string{"w1", "w2"})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "delete from course_assignments")
	require.Contains(t, q, "course_id = $1")
	require.Contains(t, q, "id not in ($2,$3)")
	require.Equal(t, []any{"c1", "w1", "w2"}, args)
}

func Test_buildPhoneMapQuery(t *testing.T) {
	query, args, err := buildPhoneMapQuery(statementBuilder(DriverPostgres), []int64{7, 9})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from user_contacts")
	require.Contains(t, q, "user_id in ($1,$2)")
	require.Contains(t, q, "phone_e164 is not null")
	require.Contains(t, q, "phone_e164 <> ''")
	require.Equal(t, []any{int64(7), int64(9)}, args)
}

func Test_buildStudentRecipientsQuery(t *testing.T) {
	query, args, err := buildStudentRecipientsQuery(statementBuilder(DriverPostgres), "c1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from course_participants p")
	require.Contains(t, q, "left join user_contacts c on c.user_id = p.matched_user_id")
	require.Contains(t, q, "p.course_id = $1")
	require.Contains(t, q, "p.role = $2")
	require.Contains(t, q, "order by p.google_user_id")
	require.Equal(t, []any{"c1", "student"}, args)
}

func Test_statementBuilder_SQLiteUsesQuestionMarks(t *testing.T) {
	query, _, err := buildDeleteAbsentAssignmentsQuery(statementBuilder(DriverSQLite), "c1", []string{"w1"})
	require.NoError(t, err)

	require.NotContains(t, query, "$1")
	require.Contains(t, query, "?")
}

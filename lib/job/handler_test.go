package jobhandler

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hiring-platform-backend/lib/apperror"
	jobstore "hiring-platform-backend/lib/job/store"
	"hiring-platform-backend/models"
	jobapimodels "hiring-platform-backend/models/api/job"
	dbmodels "hiring-platform-backend/models/db"
)

// fakeJobStore keeps jobs in memory and mirrors the conditional-update
// contract of the real store: a status precondition is checked and applied
// under one lock, so concurrent transitions race the same way.
type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[string]*dbmodels.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: map[string]*dbmodels.Job{}}
}

func (s *fakeJobStore) Create(rec dbmodels.Job) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	s.jobs[rec.ID] = &rec
	return rec.ID, nil
}

func (s *fakeJobStore) GetByID(id string) (*dbmodels.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeJobStore) GetByPublicLink(link string) (*dbmodels.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.jobs {
		if rec.PublicLink == link && link != "" {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeJobStore) Update(id string, updMap map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[id]
	if !ok {
		return false, nil
	}
	applyColumns(rec, updMap)
	return true, nil
}

func (s *fakeJobStore) UpdateWhereStatus(id string, from []models.JobStatus, updMap map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[id]
	if !ok || !statusIn(rec.Status, from) {
		return false, nil
	}
	applyColumns(rec, updMap)
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (s *fakeJobStore) UpdateFieldsWhereStatus(id string, from []models.JobStatus, upd dbmodels.Job, fields []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[id]
	if !ok || !statusIn(rec.Status, from) {
		return false, nil
	}
	rec.Title = upd.Title
	rec.Description = upd.Description
	rec.ShortDescription = upd.ShortDescription
	rec.Location = upd.Location
	rec.WorkLocationType = upd.WorkLocationType
	rec.EmploymentType = upd.EmploymentType
	rec.Department = upd.Department
	rec.Team = upd.Team
	rec.ReportingTo = upd.ReportingTo
	rec.Tags = upd.Tags
	rec.Priority = upd.Priority
	rec.InternalNotes = upd.InternalNotes
	rec.Requirements = upd.Requirements
	rec.Compensation = upd.Compensation
	rec.ApplicationSettings = upd.ApplicationSettings
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (s *fakeJobStore) DeleteWhereStatus(id string, from []models.JobStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[id]
	if !ok || !statusIn(rec.Status, from) {
		return false, nil
	}
	delete(s.jobs, id)
	return true, nil
}

func (s *fakeJobStore) List(query jobstore.ListQuery) ([]dbmodels.Job, error) {
	matched := s.match(query)
	page, limit := query.Filter.GetPage()
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []dbmodels.Job{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *fakeJobStore) ListCount(query jobstore.ListQuery) (int64, error) {
	return int64(len(s.match(query))), nil
}

func (s *fakeJobStore) IncrementViews(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.jobs[id]; ok {
		rec.ViewsCount++
	}
	return nil
}

func (s *fakeJobStore) IncrementApplications(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.jobs[id]; ok {
		rec.ApplicationsCount++
	}
	return nil
}

func (s *fakeJobStore) Stats(createdBy string) ([]jobstore.StatusAgg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byStatus := map[models.JobStatus]*jobstore.StatusAgg{}
	for _, rec := range s.jobs {
		if createdBy != "" && rec.CreatedBy != createdBy {
			continue
		}
		agg, ok := byStatus[rec.Status]
		if !ok {
			agg = &jobstore.StatusAgg{Status: rec.Status}
			byStatus[rec.Status] = agg
		}
		agg.Count++
		agg.Views += rec.ViewsCount
		agg.Applications += rec.ApplicationsCount
	}
	aggs := make([]jobstore.StatusAgg, 0, len(byStatus))
	for _, agg := range byStatus {
		aggs = append(aggs, *agg)
	}
	return aggs, nil
}

func (s *fakeJobStore) match(query jobstore.ListQuery) []dbmodels.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []dbmodels.Job{}
	for _, rec := range s.jobs {
		if len(query.Statuses) != 0 && !statusIn(rec.Status, query.Statuses) {
			continue
		}
		if query.OnlyActive && !rec.IsActive {
			continue
		}
		if query.UnexpiredDeadline && rec.ApplicationDeadline != nil && rec.ApplicationDeadline.Before(time.Now()) {
			continue
		}
		if query.CreatedBy != "" && rec.CreatedBy != query.CreatedBy {
			continue
		}
		matched = append(matched, *rec)
	}
	sort.Slice(matched, func(a, b int) bool {
		return matched[a].CreatedAt.After(matched[b].CreatedAt)
	})
	return matched
}

func statusIn(status models.JobStatus, set []models.JobStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func applyColumns(rec *dbmodels.Job, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.JobStatus)
		case "is_active":
			rec.IsActive = value.(bool)
		case "public_link":
			rec.PublicLink = value.(string)
		case "published_by":
			rec.PublishedBy = value.(string)
		case "published_at":
			rec.PublishedAt = timePtr(value)
		case "closed_at":
			rec.ClosedAt = timePtr(value)
		case "filled_at":
			rec.FilledAt = timePtr(value)
		case "closure_reason":
			rec.ClosureReason = value.(string)
		case "approval_state":
			rec.Approval.State = value.(models.ApprovalState)
		case "approval_approved_by":
			rec.Approval.ApprovedBy = value.(string)
		case "approval_rejected_by":
			rec.Approval.RejectedBy = value.(string)
		case "approval_approved_at":
			rec.Approval.ApprovedAt = timePtr(value)
		case "approval_rejected_at":
			rec.Approval.RejectedAt = timePtr(value)
		case "approval_rejection_reason":
			rec.Approval.RejectionReason = value.(string)
		case "approval_comments":
			rec.Approval.Comments = value.(string)
		}
	}
}

func timePtr(value interface{}) *time.Time {
	if value == nil {
		return nil
	}
	t := value.(time.Time)
	return &t
}

// interceptStore lets a test interleave a concurrent change between the
// handler's read and its conditional update.
type interceptStore struct {
	*fakeJobStore
	beforeFieldUpdate func()
}

func (s *interceptStore) UpdateFieldsWhereStatus(id string, from []models.JobStatus, rec dbmodels.Job, fields []string) (bool, error) {
	if s.beforeFieldUpdate != nil {
		s.beforeFieldUpdate()
	}
	return s.fakeJobStore.UpdateFieldsWhereStatus(id, from, rec, fields)
}

func newTestHandler() (impl, *fakeJobStore) {
	store := newFakeJobStore()
	return impl{store: store}, store
}

func validJobData() jobapimodels.JobData {
	return jobapimodels.JobData{
		Title:         "Senior Backend Engineer (Platform Team)",
		Description:   "Design and run the services behind our hiring platform.",
		Department:    "Engineering",
		InternalNotes: "backfill for departed lead",
		Requirements: jobapimodels.RequirementsData{
			Skills: []string{"Go", "PostgreSQL"},
		},
	}
}

const (
	recruiterID = "recruiter-1"
	managerID   = "manager-1"
	adminID     = "admin-1"
	candidateID = "candidate-1"
)

func TestJobLifecycle(t *testing.T) {
	t.Run(`draft to published to closed`, func(t *testing.T) {
		h, store := newTestHandler()

		id, err := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())
		require.Nil(t, err)

		rec, _ := store.GetByID(id)
		require.Equal(t, models.JobStatusDraft, rec.Status)
		require.Equal(t, models.ApprovalStateNotRequired, rec.Approval.State)
		require.False(t, rec.IsActive)
		require.Empty(t, rec.PublicLink)

		require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))
		rec, _ = store.GetByID(id)
		require.Equal(t, models.JobStatusPendingApproval, rec.Status)
		require.Equal(t, models.ApprovalStatePending, rec.Approval.State)

		require.Nil(t, h.Approve(id, managerID, models.UserRoleHiringManager, jobapimodels.ApproveRequest{Comments: "looks good"}))
		rec, _ = store.GetByID(id)
		require.Equal(t, models.JobStatusApproved, rec.Status)
		require.Equal(t, models.ApprovalStateApproved, rec.Approval.State)
		require.Equal(t, managerID, rec.Approval.ApprovedBy)
		require.NotNil(t, rec.Approval.ApprovedAt)

		require.Nil(t, h.Publish(id, recruiterID, models.UserRoleRecruiter))
		rec, _ = store.GetByID(id)
		require.Equal(t, models.JobStatusPublished, rec.Status)
		require.True(t, rec.IsActive)
		require.Equal(t, recruiterID, rec.PublishedBy)
		require.NotNil(t, rec.PublishedAt)
		require.Equal(t, PublicLink(rec.Title, rec.ID), rec.PublicLink)

		require.Nil(t, h.Close(id, recruiterID, models.UserRoleRecruiter, jobapimodels.CloseRequest{}))
		rec, _ = store.GetByID(id)
		require.Equal(t, models.JobStatusClosed, rec.Status)
		require.False(t, rec.IsActive)
		require.Equal(t, models.DefaultClosureReason, rec.ClosureReason)
		require.NotNil(t, rec.ClosedAt)
	})

	t.Run(`reject returns the job to draft and resubmit clears the decision`, func(t *testing.T) {
		h, store := newTestHandler()

		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())
		require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))

		reject := jobapimodels.RejectRequest{RejectionReason: "salary range missing", Comments: "please add"}
		require.Nil(t, h.Reject(id, managerID, models.UserRoleHiringManager, reject))
		rec, _ := store.GetByID(id)
		require.Equal(t, models.JobStatusDraft, rec.Status)
		require.Equal(t, models.ApprovalStateRejected, rec.Approval.State)
		require.Equal(t, managerID, rec.Approval.RejectedBy)
		require.Equal(t, "salary range missing", rec.Approval.RejectionReason)

		require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))
		rec, _ = store.GetByID(id)
		require.Equal(t, models.ApprovalStatePending, rec.Approval.State)
		require.Empty(t, rec.Approval.RejectedBy)
		require.Nil(t, rec.Approval.RejectedAt)
		require.Empty(t, rec.Approval.RejectionReason)
	})

	t.Run(`public link survives the rest of the lifecycle unchanged`, func(t *testing.T) {
		h, store := newTestHandler()

		id := publishedJob(t, h)
		rec, _ := store.GetByID(id)
		link := rec.PublicLink
		require.NotEmpty(t, link)

		err := h.Publish(id, recruiterID, models.UserRoleRecruiter)
		require.True(t, apperror.IsCode(err, apperror.CodeInvalidStatus))

		require.Nil(t, h.MarkFilled(id, managerID, models.UserRoleHiringManager))
		rec, _ = store.GetByID(id)
		require.Equal(t, models.JobStatusFilled, rec.Status)
		require.NotNil(t, rec.FilledAt)
		require.Equal(t, link, rec.PublicLink)
	})

	t.Run(`cancel and delete cover only fresh drafts`, func(t *testing.T) {
		h, store := newTestHandler()

		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())
		require.Nil(t, h.Cancel(id, recruiterID, models.UserRoleRecruiter))
		rec, _ := store.GetByID(id)
		require.Equal(t, models.JobStatusCancelled, rec.Status)

		require.Nil(t, h.Delete(id, recruiterID, models.UserRoleRecruiter))
		rec, _ = store.GetByID(id)
		require.Nil(t, rec)

		err := h.Delete(id, recruiterID, models.UserRoleRecruiter)
		require.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	})

	t.Run(`missing job reports not found`, func(t *testing.T) {
		h, _ := newTestHandler()
		err := h.SubmitForApproval("no-such-id", recruiterID, models.UserRoleRecruiter)
		require.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	})
}

func TestJobTransitionRace(t *testing.T) {
	t.Run(`concurrent approvals produce exactly one winner`, func(t *testing.T) {
		h, store := newTestHandler()

		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())
		require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))

		const workers = 8
		results := make(chan error, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- h.Approve(id, managerID, models.UserRoleHiringManager, jobapimodels.ApproveRequest{})
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
				continue
			}
			require.True(t, apperror.IsCode(err, apperror.CodeInvalidStatus))
		}
		require.Equal(t, 1, wins)

		rec, _ := store.GetByID(id)
		require.Equal(t, models.JobStatusApproved, rec.Status)
	})

	t.Run(`approve and reject cannot both win`, func(t *testing.T) {
		h, store := newTestHandler()

		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())
		require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))

		var wg sync.WaitGroup
		var approveErr, rejectErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			approveErr = h.Approve(id, managerID, models.UserRoleHiringManager, jobapimodels.ApproveRequest{})
		}()
		go func() {
			defer wg.Done()
			rejectErr = h.Reject(id, adminID, models.UserRoleAdmin, jobapimodels.RejectRequest{RejectionReason: "duplicate posting"})
		}()
		wg.Wait()

		require.True(t, (approveErr == nil) != (rejectErr == nil))

		rec, _ := store.GetByID(id)
		if approveErr == nil {
			require.Equal(t, models.JobStatusApproved, rec.Status)
		} else {
			require.Equal(t, models.JobStatusDraft, rec.Status)
		}
	})
}

func TestJobVisibility(t *testing.T) {
	t.Run(`candidates cannot see unpublished jobs`, func(t *testing.T) {
		h, _ := newTestHandler()
		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())

		_, err := h.GetByID(id, candidateID, models.UserRoleCandidate)
		require.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	})

	t.Run(`published job is redacted for candidates`, func(t *testing.T) {
		h, _ := newTestHandler()
		id := publishedJob(t, h)

		view, err := h.GetByID(id, candidateID, models.UserRoleCandidate)
		require.Nil(t, err)
		require.Empty(t, view.InternalNotes)
		require.Nil(t, view.Approval)
		require.Empty(t, view.CreatedBy)
		require.NotEmpty(t, view.PublicLink)
	})

	t.Run(`only the creator sees internal notes`, func(t *testing.T) {
		h, _ := newTestHandler()
		id := publishedJob(t, h)

		view, err := h.GetByID(id, recruiterID, models.UserRoleRecruiter)
		require.Nil(t, err)
		require.Equal(t, "backfill for departed lead", view.InternalNotes)
		require.NotNil(t, view.Approval)

		view, err = h.GetByID(id, "recruiter-2", models.UserRoleRecruiter)
		require.Nil(t, err)
		require.Empty(t, view.InternalNotes)
	})

	t.Run(`candidate list sees only active published jobs`, func(t *testing.T) {
		h, _ := newTestHandler()
		publishedJob(t, h)
		draftID, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())

		list, count, err := h.List(candidateID, models.UserRoleCandidate, jobapimodels.JobFilter{})
		require.Nil(t, err)
		require.EqualValues(t, 1, count)
		require.Len(t, list, 1)
		require.NotEqual(t, draftID, list[0].ID)
		require.Equal(t, models.JobStatusPublished, list[0].Status)
	})

	t.Run(`privileged list rejects an unknown status filter`, func(t *testing.T) {
		h, _ := newTestHandler()
		filter := jobapimodels.JobFilter{Status: "SOMETHING_ELSE"}
		_, _, err := h.List(recruiterID, models.UserRoleRecruiter, filter)
		require.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})
}

func TestJobBoard(t *testing.T) {
	t.Run(`board read increments the view counter`, func(t *testing.T) {
		h, store := newTestHandler()
		id := publishedJob(t, h)
		rec, _ := store.GetByID(id)

		view, err := h.BoardGetByLink(rec.PublicLink)
		require.Nil(t, err)
		require.EqualValues(t, 1, view.ViewsCount)

		view, err = h.BoardGetByLink(rec.PublicLink)
		require.Nil(t, err)
		require.EqualValues(t, 2, view.ViewsCount)

		rec, _ = store.GetByID(id)
		require.EqualValues(t, 2, rec.ViewsCount)
	})

	t.Run(`expired deadline hides the job from the board`, func(t *testing.T) {
		h, store := newTestHandler()
		id := publishedJob(t, h)
		rec, _ := store.GetByID(id)

		past := time.Now().Add(-time.Hour)
		store.mu.Lock()
		store.jobs[id].ApplicationDeadline = &past
		store.mu.Unlock()

		_, err := h.BoardGetByLink(rec.PublicLink)
		require.True(t, apperror.IsCode(err, apperror.CodeNotFound))

		list, count, err := h.BoardList(jobapimodels.JobFilter{})
		require.Nil(t, err)
		require.EqualValues(t, 0, count)
		require.Empty(t, list)
	})

	t.Run(`unknown link reports not found`, func(t *testing.T) {
		h, _ := newTestHandler()
		_, err := h.BoardGetByLink("no-such-link")
		require.True(t, apperror.IsCode(err, apperror.CodeNotFound))
	})
}

func TestJobStats(t *testing.T) {
	t.Run(`admin sees all jobs, others only their own`, func(t *testing.T) {
		h, _ := newTestHandler()
		publishedJob(t, h)
		_, err := h.Create("recruiter-2", models.UserRoleRecruiter, validJobData())
		require.Nil(t, err)

		stats, err := h.Stats(adminID, models.UserRoleAdmin)
		require.Nil(t, err)
		require.EqualValues(t, 2, stats.TotalJobs)

		stats, err = h.Stats(recruiterID, models.UserRoleRecruiter)
		require.Nil(t, err)
		require.EqualValues(t, 1, stats.TotalJobs)
	})
}

func TestJobExport(t *testing.T) {
	t.Run(`export is closed to candidates`, func(t *testing.T) {
		h, _ := newTestHandler()
		_, err := h.ListForExport(candidateID, models.UserRoleCandidate, jobapimodels.JobFilter{})
		require.True(t, apperror.IsCode(err, apperror.CodeForbidden))
	})

	t.Run(`export returns the raw records`, func(t *testing.T) {
		h, _ := newTestHandler()
		publishedJob(t, h)

		list, err := h.ListForExport(recruiterID, models.UserRoleRecruiter, jobapimodels.JobFilter{})
		require.Nil(t, err)
		require.Len(t, list, 1)
	})
}

func TestJobUpdate(t *testing.T) {
	t.Run(`creator edits a draft`, func(t *testing.T) {
		h, store := newTestHandler()
		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())

		data := validJobData()
		data.Title = "Staff Backend Engineer"
		require.Nil(t, h.Update(id, recruiterID, models.UserRoleRecruiter, data))

		rec, _ := store.GetByID(id)
		require.Equal(t, "Staff Backend Engineer", rec.Title)
	})

	t.Run(`published job cannot be edited`, func(t *testing.T) {
		h, _ := newTestHandler()
		id := publishedJob(t, h)

		err := h.Update(id, recruiterID, models.UserRoleRecruiter, validJobData())
		require.True(t, apperror.IsCode(err, apperror.CodeInvalidStatus))
	})

	t.Run(`lost pending edit race reports only the pending status`, func(t *testing.T) {
		store := newFakeJobStore()
		wrapped := &interceptStore{fakeJobStore: store}
		h := impl{store: wrapped}

		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())
		require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))

		// a rejection lands between the read and the conditional update
		wrapped.beforeFieldUpdate = func() {
			store.mu.Lock()
			store.jobs[id].Status = models.JobStatusDraft
			store.mu.Unlock()
		}
		err := h.Update(id, managerID, models.UserRoleHiringManager, validJobData())
		require.True(t, apperror.IsCode(err, apperror.CodeInvalidStatus))
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		require.Contains(t, appErr.Message, string(models.JobStatusPendingApproval))
		require.NotContains(t, appErr.Message, string(models.JobStatusDraft))
	})

	t.Run(`non-creator hiring manager edits only while pending`, func(t *testing.T) {
		h, _ := newTestHandler()
		id, _ := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())

		err := h.Update(id, managerID, models.UserRoleHiringManager, validJobData())
		require.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))

		require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))
		require.Nil(t, h.Update(id, managerID, models.UserRoleHiringManager, validJobData()))
	})
}

// publishedJob walks a fresh job through the full approval chain.
func publishedJob(t *testing.T, h impl) string {
	t.Helper()
	id, err := h.Create(recruiterID, models.UserRoleRecruiter, validJobData())
	require.Nil(t, err)
	require.Nil(t, h.SubmitForApproval(id, recruiterID, models.UserRoleRecruiter))
	require.Nil(t, h.Approve(id, managerID, models.UserRoleHiringManager, jobapimodels.ApproveRequest{}))
	require.Nil(t, h.Publish(id, recruiterID, models.UserRoleRecruiter))
	return id
}

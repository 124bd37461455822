package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/testutil"
	"gorm.io/gorm"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repo     TaskRepository
	messages MessageRepository
	due      time.Time
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.repo = NewTaskRepository(s.db)
	s.messages = NewMessageRepository(s.db)
	s.due = time.Date(2031, time.March, 14, 0, 0, 0, 0, time.UTC)
}

func (s *TaskRepositoryTestSuite) createTask(title, createdBy string, assignees ...string) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: title + " description",
		AssignedBy:  createdBy,
		DueDate:     s.due,
	}
	s.Require().NoError(s.repo.Create(task, assignees))
	return task
}

func (s *TaskRepositoryTestSuite) TestCreate_PersistsPendingTask() {
	task := s.createTask("Write report", "boss", "bob", "alice")
	s.NotZero(task.ID)

	found, err := s.repo.FindByID(task.ID)
	s.Require().NoError(err)
	s.Equal("Write report", found.Title)
	s.Equal("Write report description", found.Description)
	s.Equal("boss", found.AssignedBy)
	s.Equal(models.TaskStatusPending, found.Status)
	s.Equal("2031-03-14", found.DueDate.Format(time.DateOnly))
	s.Equal([]string{"bob", "alice"}, found.Assignees())
	s.False(found.CreatedAt.IsZero())
}

func (s *TaskRepositoryTestSuite) TestCreate_CollapsesDuplicateAssignees() {
	task := s.createTask("Dedupe", "boss", "alice", "alice", "bob")

	var assignments []models.TaskAssignment
	s.Require().NoError(s.db.Where("task_id = ?", task.ID).Order("position").Find(&assignments).Error)
	s.Require().Len(assignments, 2)
	s.Equal("alice", assignments[0].AssignedTo)
	s.Equal("bob", assignments[1].AssignedTo)
}

func (s *TaskRepositoryTestSuite) TestCreate_RequiresAssignee() {
	task := &models.Task{Title: "Lonely", Description: "d", AssignedBy: "boss", DueDate: s.due}
	s.ErrorIs(s.repo.Create(task, nil), ErrNoAssignees)

	var count int64
	s.Require().NoError(s.db.Model(&models.Task{}).Count(&count).Error)
	s.Zero(count)
}

func (s *TaskRepositoryTestSuite) TestCreate_StoresNotesWithTask() {
	task := &models.Task{Title: "Self", Description: "d", AssignedBy: "alice", DueDate: s.due}
	note := models.NewSystemMessage(0, "Task self-assigned by alice")
	s.Require().NoError(s.repo.Create(task, []string{"alice"}, note))

	thread, err := s.messages.ListByTask(task.ID)
	s.Require().NoError(err)
	s.Require().Len(thread, 1)
	s.Equal(task.ID, thread[0].TaskID)
	s.Equal("System updated: Task self-assigned by alice", thread[0].Body)
}

func (s *TaskRepositoryTestSuite) TestFindByID_NotFound() {
	_, err := s.repo.FindByID(404)
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskRepositoryTestSuite) TestSetStatus() {
	task := s.createTask("Status", "boss", "alice")

	s.Require().NoError(s.repo.SetStatus(task.ID, models.TaskStatusCompleted))
	// Overwriting with the same value is accepted.
	s.Require().NoError(s.repo.SetStatus(task.ID, models.TaskStatusCompleted))

	tasks, err := s.repo.ListForUser("alice", models.RoleMember)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(models.TaskStatusCompleted, tasks[0].Status)

	s.ErrorIs(s.repo.SetStatus(404, models.TaskStatusPending), ErrTaskNotFound)
}

func (s *TaskRepositoryTestSuite) TestTransitionStatus_WritesOneNote() {
	task := s.createTask("Transition", "boss", "alice")
	note := func(from models.TaskStatus) *models.Message {
		return models.NewSystemMessage(0, string(from)+" -> "+string(models.TaskStatusInProgress))
	}

	previous, err := s.repo.TransitionStatus(task.ID, models.TaskStatusInProgress, note)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusPending, previous)

	// Same status again changes nothing.
	previous, err = s.repo.TransitionStatus(task.ID, models.TaskStatusInProgress, note)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusInProgress, previous)

	thread, err := s.messages.ListByTask(task.ID)
	s.Require().NoError(err)
	s.Require().Len(thread, 1)
	s.Equal("System updated: pending -> in_progress", thread[0].Body)

	found, err := s.repo.FindByID(task.ID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusInProgress, found.Status)
}

func (s *TaskRepositoryTestSuite) TestTransitionStatus_NotFound() {
	_, err := s.repo.TransitionStatus(404, models.TaskStatusCompleted, func(models.TaskStatus) *models.Message {
		s.Fail("note must not be built for a missing task")
		return nil
	})
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskRepositoryTestSuite) TestListForUser_Visibility() {
	first := s.createTask("Assigned to alice", "boss", "alice")
	second := s.createTask("Created by alice", "alice", "bob")
	third := s.createTask("Unrelated", "boss", "bob")

	all, err := s.repo.ListForUser("boss", models.RoleBoss)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	// Newest first.
	s.Equal(third.ID, all[0].ID)
	s.Equal(second.ID, all[1].ID)
	s.Equal(first.ID, all[2].ID)

	mine, err := s.repo.ListForUser("alice", models.RoleMember)
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal(second.ID, mine[0].ID)
	s.Equal([]string{"bob"}, mine[0].Assignees())
	s.Equal(first.ID, mine[1].ID)

	none, err := s.repo.ListForUser("carol", models.RoleMember)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *TaskRepositoryTestSuite) TestListForUser_FullAssigneeSetAndMessageCount() {
	task := s.createTask("Shared", "boss", "alice", "bob", "carol")
	for _, body := range []string{"one", "two"} {
		s.Require().NoError(s.messages.Create(&models.Message{
			TaskID:      task.ID,
			Sender:      "alice",
			Body:        body,
			MessageType: models.MessageTypeUser,
		}))
	}

	tasks, err := s.repo.ListForUser("bob", models.RoleMember)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal([]string{"alice", "bob", "carol"}, tasks[0].Assignees())
	s.Equal(int64(2), tasks[0].MessageCount)
}

func (s *TaskRepositoryTestSuite) TestStatsForUser() {
	done := s.createTask("Done", "boss", "alice")
	s.createTask("Pending one", "boss", "alice", "bob")
	s.createTask("Pending two", "boss", "alice")
	// Created by alice but not assigned to her.
	s.createTask("Delegated", "alice", "bob")
	s.Require().NoError(s.repo.SetStatus(done.ID, models.TaskStatusCompleted))

	stats, err := s.repo.StatsForUser("alice")
	s.Require().NoError(err)
	s.Equal(models.TaskStats{Total: 3, Completed: 1, InProgress: 0, Pending: 2, FollowupNeeded: 0}, *stats)

	empty, err := s.repo.StatsForUser("nobody")
	s.Require().NoError(err)
	s.Equal(models.TaskStats{}, *empty)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"tasktracker/internal/adapter/database/sqlite/repository"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/service"
	"tasktracker/internal/shared"
	"tasktracker/pkg/apierrors"
	. "tasktracker/pkg/auth"
	. "tasktracker/pkg/test"
	factory "tasktracker/pkg/test/factory"

	"github.com/google/uuid"
)

type TaskHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository
	Router   *gin.Engine
}

var ctx = context.Background()

func (s *TaskHandlerSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", "handler-test-secret")
}

func (s *TaskHandlerSuite) SetupTest() {
	db := InitTestDatabase()

	s.TaskRepo = repository.NewTaskRepository(db)
	s.UserRepo = repository.NewUserRepository(db)

	taskUseCase := service.NewTaskService(s.TaskRepo)
	logger, err := shared.NewLokiLogger("tasktracker-test", "http://localhost:3100")
	s.Require().NoError(err)

	taskHandler := NewTaskHandler(taskUseCase, logger)

	// Router built locally to avoid an import cycle with the api package.
	s.Router = setupTaskTestRouter(taskHandler)
}

func TestTaskHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskHandlerSuite))
}

func setupTaskTestRouter(taskHandler *TaskHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(gin.Recovery())

	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(GinJwtMiddleware())
	{
		protected.GET("/tasks", taskHandler.GetAllTasks)
		protected.POST("/tasks", taskHandler.CreateTask)
		protected.GET("/tasks/:uuid", taskHandler.GetTask)
		protected.PUT("/tasks/:uuid", taskHandler.UpdateTask)
		protected.DELETE("/tasks/:uuid", taskHandler.DeleteByUUID)
	}

	return router
}

func (s *TaskHandlerSuite) createUser(login string) domain.User {
	user, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Login": login,
	}))
	s.Require().NoError(err)

	return user
}

func (s *TaskHandlerSuite) createTask(userId int, custom map[string]any) domain.Task {
	data := map[string]any{"UserId": userId}
	for k, v := range custom {
		data[k] = v
	}

	task, err := s.TaskRepo.Create(ctx, factory.NewTask[domain.Task](data))
	s.Require().NoError(err)

	return task
}

func (s *TaskHandlerSuite) authorizedRequest(method, path string, body string, userId int) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)

	jwtToken, _ := CreateJwtTokenForUser(userId)
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *TaskHandlerSuite) TestGetAllTasksWithData() {
	user := s.createUser("user99@example.com")
	s.createTask(user.ID, map[string]any{"Title": "Water the plants"})

	rr := s.authorizedRequest("GET", "/tasks", "", user.ID)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

	body, _ := io.ReadAll(rr.Body)

	data := response.CursorResponse{}
	json.Unmarshal(body, &data)

	var tasks []response.TaskResponse
	json.Unmarshal(data.Data, &tasks)

	Expect(data.Size).To(Equal(1))
	Expect(len(tasks)).To(Equal(1))
	Expect(tasks[0].Title).To(Equal("Water the plants"))
}

func (s *TaskHandlerSuite) TestGetAllTasksRequiresToken() {
	req, _ := http.NewRequest("GET", "/tasks", nil)
	rr := httptest.NewRecorder()

	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(envelope.Error).To(Equal("UNAUTHORIZED"))
	Expect(envelope.FieldErrors).To(BeEmpty())
}

func (s *TaskHandlerSuite) TestCreateTask() {
	user := s.createUser("user99@example.com")

	reqBody := `{"title_name": "Buy groceries", "estimated_time": 2}`
	rr := s.authorizedRequest("POST", "/tasks", reqBody, user.ID)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	body, _ := io.ReadAll(rr.Body)

	Expect(strings.Contains(string(body), "fieldErrors")).To(BeFalse())

	resp := struct {
		Data response.TaskResponse `json:"data"`
	}{}
	json.Unmarshal(body, &resp)

	Expect(resp.Data.Title).To(Equal("Buy groceries"))
	Expect(resp.Data.UUID).To(Not(Equal(uuid.Nil)))
	Expect(resp.Data.Status).To(Equal("pending"))
	Expect(*resp.Data.EstimatedTime).To(Equal(2.0))
}

func (s *TaskHandlerSuite) TestCreateTaskShortTitle() {
	user := s.createUser("user99@example.com")

	reqBody := `{"title_name": "Go"}`
	rr := s.authorizedRequest("POST", "/tasks", reqBody, user.ID)

	Expect(rr.Code).To(Equal(http.StatusUnprocessableEntity))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(envelope.Status).To(Equal(http.StatusUnprocessableEntity))
	Expect(envelope.Error).To(Equal("UNPROCESSABLE_ENTITY"))
	Expect(len(envelope.FieldErrors)).To(Equal(1))
	Expect(envelope.FieldErrors[0].Field).To(Equal("title_name"))
	Expect(string(envelope.FieldErrors[0].Code)).To(Equal("TOO_SHORT"))
}

func (s *TaskHandlerSuite) TestCreateTaskInvalidStatus() {
	user := s.createUser("user99@example.com")

	reqBody := `{"title_name": "Buy groceries", "status": "done"}`
	rr := s.authorizedRequest("POST", "/tasks", reqBody, user.ID)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TaskHandlerSuite) TestUpdateTaskToCompleted() {
	user := s.createUser("user99@example.com")
	task := s.createTask(user.ID, map[string]any{"Title": "Task Created"})

	reqBody := `{"title_name": "Task Updated", "status": "completed"}`
	path := fmt.Sprintf("/tasks/%s", task.UUID.String())

	rr := s.authorizedRequest("PUT", path, reqBody, user.ID)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	resp := struct {
		Data response.TaskResponse `json:"data"`
	}{}
	json.Unmarshal(body, &resp)

	Expect(resp.Data.Title).To(Equal("Task Updated"))
	Expect(resp.Data.Status).To(Equal("completed"))
}

func (s *TaskHandlerSuite) TestUpdateTaskOfAnotherUser() {
	owner := s.createUser("owner@example.com")
	intruder := s.createUser("intruder@example.com")
	task := s.createTask(owner.ID, nil)

	reqBody := `{"title_name": "Hijacked"}`
	path := fmt.Sprintf("/tasks/%s", task.UUID.String())

	rr := s.authorizedRequest("PUT", path, reqBody, intruder.ID)

	Expect(rr.Code).To(Equal(http.StatusForbidden))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(envelope.Error).To(Equal("FORBIDDEN"))
}

func (s *TaskHandlerSuite) TestDeleteByUUIDWhenIdExists() {
	user := s.createUser("user99@example.com")
	task := s.createTask(user.ID, nil)

	path := fmt.Sprintf("/tasks/%s", task.UUID.String())
	rr := s.authorizedRequest("DELETE", path, "", user.ID)

	Expect(rr.Code).To(Equal(http.StatusNoContent))

	_, err := s.TaskRepo.GetByUUID(ctx, task.UUID.String())
	Expect(err).To(MatchError(domain.ErrTaskNotFound))
}

func (s *TaskHandlerSuite) TestDeleteByUUIDWhenIdDoesNotExist() {
	user := s.createUser("user99@example.com")

	path := fmt.Sprintf("/tasks/%s", uuid.New().String())
	rr := s.authorizedRequest("DELETE", path, "", user.ID)

	Expect(rr.Code).To(Equal(http.StatusNotFound))

	body, _ := io.ReadAll(rr.Body)

	// Non-validation failures never carry a field-error list.
	Expect(strings.Contains(string(body), "fieldErrors")).To(BeFalse())

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(envelope.Error).To(Equal("NOT_FOUND"))
	Expect(envelope.Status).To(Equal(http.StatusNotFound))
}

//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/handler/api"
	"reserve-portal/internal/usecase/commands"
	"reserve-portal/internal/usecase/queries"
	commandsmock "reserve-portal/tests/mock/commands"
	queriesmock "reserve-portal/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	handler := api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations", handler.CreateReservation)
	s.router.GET("/reservations/:id", handler.GetReservation)
	s.router.GET("/reservations", handler.ListReservations)
	s.router.POST("/reservations/:id/cancel", handler.CancelReservation)
	s.router.POST("/reservations/:id/close", handler.CloseReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func createBody() map[string]any {
	start := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	return map[string]any{
		"item_id":      1,
		"quantity":     2,
		"purpose":      "town meeting",
		"start_at":     start.Format(time.RFC3339),
		"end_at":       start.Add(4 * time.Hour).Format(time.RFC3339),
		"requester_id": "citizen-7",
	}
}

// ================================================================================
// CreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	s.Run("valid request returns 201 with the view", func() {
		view := &queries.ReservationView{ID: uuid.New(), Status: reservation.StatusApprove.String()}
		s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(view, nil)

		rec := s.perform(http.MethodPost, "/reservations", createBody())
		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), view.ID.String())
	})

	s.Run("malformed body returns 400", func() {
		rec := s.perform(http.MethodPost, "/reservations", map[string]any{"item_id": "not-a-number"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing required fields return 400", func() {
		body := createBody()
		delete(body, "requester_id")
		rec := s.perform(http.MethodPost, "/reservations", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
		expectBody string
	}{
		{"unknown item", commands.ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
		{"window out of range", reservation.ErrWindowOutOfRange, http.StatusBadRequest, "WINDOW_OUT_OF_RANGE"},
		{"period too long", reservation.ErrPeriodTooLong, http.StatusBadRequest, "PERIOD_TOO_LONG"},
		{"slot unavailable", reservation.ErrSlotUnavailable, http.StatusConflict, "SLOT_UNAVAILABLE"},
		{"capacity exceeded", reservation.ErrCapacityExceeded, http.StatusConflict, "CAPACITY_EXCEEDED"},
		{"exclusive quantity", reservation.ErrExclusiveQuantity, http.StatusUnprocessableEntity, "EXCLUSIVE_QUANTITY"},
		{"domain validation", commands.ErrDomainValidation, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"publish failed", commands.ErrEventPublishFailed, http.StatusServiceUnavailable, "EVENT_PUBLISH_FAILED"},
		{"storage failure", commands.ErrStorageFailure, http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range errCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := s.perform(http.MethodPost, "/reservations", createBody())
			s.Equal(tc.expectCode, rec.Code)
			s.Contains(rec.Body.String(), tc.expectBody)
		})
	}
}

// ================================================================================
// GetReservation / ListReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("existing reservation returns 200", func() {
		id := uuid.New()
		view := &queries.ReservationView{ID: id, Status: reservation.StatusRequest.String()}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil)

		rec := s.perform(http.MethodGet, "/reservations/"+id.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), id.String())
	})

	s.Run("unknown reservation returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, commands.ErrReservationNotFound)

		rec := s.perform(http.MethodGet, "/reservations/"+id.String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("invalid id returns 400", func() {
		rec := s.perform(http.MethodGet, "/reservations/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	s.Run("lists by requester", func() {
		items := []*queries.ReservationListItem{
			{ID: uuid.New(), ItemName: "Hall A", Status: reservation.StatusApprove.String()},
		}
		s.mockQueries.EXPECT().ListByRequester(gomock.Any(), "citizen-7", 50, 0).Return(items, nil)

		rec := s.perform(http.MethodGet, "/reservations?requester_id=citizen-7", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Hall A")
	})

	s.Run("pagination parameters pass through", func() {
		s.mockQueries.EXPECT().ListByRequester(gomock.Any(), "citizen-7", 10, 20).
			Return([]*queries.ReservationListItem{}, nil)

		rec := s.perform(http.MethodGet, "/reservations?requester_id=citizen-7&limit=10&offset=20", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("missing requester_id returns 400", func() {
		rec := s.perform(http.MethodGet, "/reservations", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// Cancel / Close
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	s.Run("success returns 204", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id).Return(nil)

		rec := s.perform(http.MethodPost, "/reservations/"+id.String()+"/cancel", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("unknown reservation returns 404", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id).Return(commands.ErrReservationNotFound)

		rec := s.perform(http.MethodPost, "/reservations/"+id.String()+"/cancel", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("invalid state returns 409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id).Return(commands.ErrInvalidTransition)

		rec := s.perform(http.MethodPost, "/reservations/"+id.String()+"/cancel", nil)
		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), "INVALID_TRANSITION")
	})
}

func (s *ReservationHandlerTestSuite) TestCloseReservation() {
	s.Run("success returns 204", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Close(gomock.Any(), id).Return(nil)

		rec := s.perform(http.MethodPost, "/reservations/"+id.String()+"/close", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("invalid state returns 409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Close(gomock.Any(), id).Return(commands.ErrInvalidTransition)

		rec := s.perform(http.MethodPost, "/reservations/"+id.String()+"/close", nil)
		s.Equal(http.StatusConflict, rec.Code)
	})
}

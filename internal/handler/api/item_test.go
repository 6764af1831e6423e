//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reserve-portal/internal/handler/api"
	resdto "reserve-portal/internal/handler/dto/response"
	"reserve-portal/internal/usecase/commands"
	"reserve-portal/internal/usecase/queries"
	commandsmock "reserve-portal/tests/mock/commands"
	queriesmock "reserve-portal/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockInventory *commandsmock.MockInventoryCommands
	mockQueries   *queriesmock.MockItemQueries
}

func (s *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockInventory = commandsmock.NewMockInventoryCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockItemQueries(s.mockCtrl)
	handler := api.NewItemHandler(s.mockInventory, s.mockQueries)

	s.router.GET("/items/:id", handler.GetItem)
	s.router.POST("/items/:id/inventory", handler.AdjustInventory)
}

func (s *ItemHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestItemHandlerSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}

func (s *ItemHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
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

func (s *ItemHandlerTestSuite) TestGetItem() {
	s.Run("existing item returns the full view", func() {
		base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		view := &queries.ItemView{
			ID:             3,
			Name:           "Community Hall A",
			LocationRef:    "north-wing",
			Category:       "space",
			TotalQty:       1,
			InventoryQty:   1,
			OperationStart: base,
			OperationEnd:   base.AddDate(1, 0, 0),
			RequestStart:   base,
			RequestEnd:     base.AddDate(1, 0, 0),
			Means:          "realtime",
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(3)).Return(view, nil)

		rec := s.perform(http.MethodGet, "/items/3", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var got resdto.ItemResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		if diff := cmp.Diff(*resdto.FromItemView(view), got); diff != "" {
			s.Failf("item response mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("unknown item returns 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, commands.ErrItemNotFound)

		rec := s.perform(http.MethodGet, "/items/9", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("non-numeric id returns 400", func() {
		rec := s.perform(http.MethodGet, "/items/abc", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ItemHandlerTestSuite) TestAdjustInventory() {
	s.Run("valid delta returns 204", func() {
		s.mockInventory.EXPECT().Adjust(gomock.Any(), int64(3), -2).Return(nil)

		rec := s.perform(http.MethodPost, "/items/3/inventory", map[string]any{"delta": -2})
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("unknown item returns 404", func() {
		s.mockInventory.EXPECT().Adjust(gomock.Any(), int64(9), 1).Return(commands.ErrItemNotFound)

		rec := s.perform(http.MethodPost, "/items/9/inventory", map[string]any{"delta": 1})
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("out-of-bounds delta returns 409", func() {
		s.mockInventory.EXPECT().Adjust(gomock.Any(), int64(3), -10).Return(commands.ErrInsufficientInventory)

		rec := s.perform(http.MethodPost, "/items/3/inventory", map[string]any{"delta": -10})
		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), "INSUFFICIENT_INVENTORY")
	})

	s.Run("missing delta returns 400", func() {
		rec := s.perform(http.MethodPost, "/items/3/inventory", map[string]any{})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

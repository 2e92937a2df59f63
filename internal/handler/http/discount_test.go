package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fungigrow/storeapi/internal/handler/http/mocks"
	"github.com/fungigrow/storeapi/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountHandler_ValidateDiscount(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockDiscountService
		wantStatusCode int
		wantBody       *validateDiscountResponse
	}{
		{
			// 200 — valid code with computed amounts
			name: "valid_code_return_200",
			body: `{"code":"HONGO10","amount":19990}`,
			setup: func(t *testing.T) *mocks.MockDiscountService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockDiscountService(ctrl)
				svcMock.EXPECT().Validate(gomock.Any(), "HONGO10", int64(19990)).Return(&models.DiscountValidation{
					Code:           "HONGO10",
					IsValid:        true,
					DiscountAmount: 1999,
					FinalAmount:    17991,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: &validateDiscountResponse{
				IsValid:                  true,
				DiscountAmountCalculated: 1999,
				FinalAmount:              17991,
			},
		},
		{
			// 200 — invalid codes are a normal evaluation result
			name: "invalid_code_return_200",
			body: `{"code":"NOPE","amount":19990}`,
			setup: func(t *testing.T) *mocks.MockDiscountService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockDiscountService(ctrl)
				svcMock.EXPECT().Validate(gomock.Any(), "NOPE", int64(19990)).Return(&models.DiscountValidation{
					Code:        "NOPE",
					IsValid:     false,
					Reason:      "El código de descuento no existe.",
					FinalAmount: 19990,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: &validateDiscountResponse{
				IsValid:     false,
				Reason:      "El código de descuento no existe.",
				FinalAmount: 19990,
			},
		},
		{
			// 400 — code is required
			name: "missing_code_return_400",
			body: `{"amount":19990}`,
			setup: func(t *testing.T) *mocks.MockDiscountService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockDiscountService(ctrl)
				svcMock.EXPECT().Validate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 400 — malformed JSON
			name: "malformed_body_return_400",
			body: "{not json",
			setup: func(t *testing.T) *mocks.MockDiscountService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockDiscountService(ctrl)
				svcMock.EXPECT().Validate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/validate-discount/", strings.NewReader(tt.body))
			require.NoError(t, err)

			w := httptest.NewRecorder()
			st := tt.setup(t)

			h := NewDiscountHandler(st).ValidateDiscount()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			require.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantBody != nil {
				var got validateDiscountResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
				if diff := cmp.Diff(*tt.wantBody, got); diff != "" {
					t.Errorf("body mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	HealthCheck()(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

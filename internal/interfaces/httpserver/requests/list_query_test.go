package requests

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

func ginContextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/models?"+rawQuery, nil)
	return c
}

func TestGetListQueryDefaults(t *testing.T) {
	params, err := GetListQueryFromContext(ginContextWithQuery(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(params.UseCases) != 0 {
		t.Errorf("use cases = %v, want none", params.UseCases)
	}
	if params.Sort != "" {
		t.Errorf("sort = %q, want unset so preferences can apply", params.Sort)
	}
	if params.TimeRange != "" {
		t.Errorf("timeRange = %q, want unset so preferences can apply", params.TimeRange)
	}
	if params.TopN != 0 || params.MaxErrorRate != nil || params.MyReports {
		t.Errorf("params = %+v", params)
	}
}

func TestGetListQueryFull(t *testing.T) {
	params, err := GetListQueryFromContext(ginContextWithQuery(t,
		"useCases=vision,tools&sort=newest&topN=5&maxErrorRate=12.5&timeRange=7d&myReports=true"))
	if err != nil {
		t.Fatal(err)
	}
	if len(params.UseCases) != 2 || params.UseCases[0] != catalog.UseCaseVision || params.UseCases[1] != catalog.UseCaseTools {
		t.Errorf("use cases = %v", params.UseCases)
	}
	if params.Sort != catalog.SortNewest || params.TopN != 5 || params.TimeRange != feedback.Range7d {
		t.Errorf("params = %+v", params)
	}
	if params.MaxErrorRate == nil || *params.MaxErrorRate != 12.5 {
		t.Errorf("maxErrorRate = %v", params.MaxErrorRate)
	}
	if !params.MyReports {
		t.Error("myReports not parsed")
	}
}

func TestGetListQueryDropsUnknownTokens(t *testing.T) {
	params, err := GetListQueryFromContext(ginContextWithQuery(t,
		"useCases=vision,banana&sort=wat&timeRange=fortnight"))
	if err != nil {
		t.Fatal(err)
	}
	if len(params.UseCases) != 1 || params.UseCases[0] != catalog.UseCaseVision {
		t.Errorf("use cases = %v, want only vision", params.UseCases)
	}
	if params.Sort != catalog.DefaultSortKey {
		t.Errorf("sort = %v, want default", params.Sort)
	}
	if params.TimeRange != feedback.DefaultTimeRange {
		t.Errorf("timeRange = %v, want default", params.TimeRange)
	}
}

func TestGetListQueryClampsTopN(t *testing.T) {
	params, err := GetListQueryFromContext(ginContextWithQuery(t, "topN=9999"))
	if err != nil {
		t.Fatal(err)
	}
	if params.TopN != 100 {
		t.Errorf("topN = %d, want 100", params.TopN)
	}
}

func TestGetListQueryRejectsMalformedNumbers(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"topN not a number", "topN=five"},
		{"maxErrorRate not a number", "maxErrorRate=lots"},
		{"maxErrorRate negative", "maxErrorRate=-5"},
		{"maxErrorRate over 100", "maxErrorRate=250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetListQueryFromContext(ginContextWithQuery(t, tt.query))
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

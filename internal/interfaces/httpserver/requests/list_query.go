package requests

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

// ListQueryParams are the raw catalog listing parameters shared by the ids and
// full listing endpoints.
type ListQueryParams struct {
	UseCases     []catalog.UseCase
	Sort         catalog.SortKey
	TopN         int
	MaxErrorRate *float64
	TimeRange    feedback.TimeRange
	MyReports    bool
}

// GetListQueryFromContext parses and normalizes catalog query parameters.
// Unknown enum tokens are dropped or defaulted; only numerically malformed
// values are rejected.
func GetListQueryFromContext(reqCtx *gin.Context) (*ListQueryParams, error) {
	params := &ListQueryParams{
		UseCases:  catalog.ParseUseCases(splitCSV(reqCtx.Query("useCases"))),
		MyReports: reqCtx.Query("myReports") == "true",
	}

	// Absent stays zero so saved key preferences can fill it in; only an
	// explicitly sent token is normalized here.
	if raw := reqCtx.Query("sort"); raw != "" {
		params.Sort = catalog.ParseSortKey(raw)
	}
	if raw := reqCtx.Query("timeRange"); raw != "" {
		params.TimeRange = feedback.ParseTimeRange(raw)
	}

	if raw := reqCtx.Query("topN"); raw != "" {
		topN, err := strconv.Atoi(raw)
		if err != nil {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid topN number", nil, "8e2d5f17-a946-4c30-bd68-1f7a3c09e542")
		}
		params.TopN = catalog.ClampTopN(topN)
	}

	if raw := reqCtx.Query("maxErrorRate"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 || rate > 100 {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "maxErrorRate must be a number between 0 and 100", nil, "2f81b6c4-d053-4ae9-9127-c8e4f5a0d316")
		}
		params.MaxErrorRate = &rate
	}

	return params, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/finanzas-app/backend/internal/advice"
	"github.com/finanzas-app/backend/internal/health"
	"github.com/finanzas-app/backend/internal/httputil"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/types"
	ez_uuid "github.com/finanzas-app/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// advisor generates advice texts for health score results. It is set at
// route registration and stays nil when the advice service is not
// configured, in which case the advice endpoints return 503.
var advisor advice.Advisor

// RegisterHealthScoreRoutes registers the routes for health scores with
// the RouterGroup that is passed.
func RegisterHealthScoreRoutes(r *gin.RouterGroup, a advice.Advisor) {
	advisor = a

	{
		r.OPTIONS("", OptionsHealthScore)
		r.GET("", GetHealthScore)
	}

	{
		r.OPTIONS("/history", OptionsHealthScoreHistory)
		r.GET("/history", GetHealthScoreHistory)
	}

	{
		r.OPTIONS("/advice", OptionsHealthScoreAdvice)
		r.GET("/advice", GetHealthScoreAdvice)
		r.POST("/advice", RegenerateHealthScoreAdvice)
	}
}

// healthScoreParams resolves the user and month from the query filter. The
// user parameter is required and must reference an existing user, the month
// defaults to the current calendar month.
func healthScoreParams(c *gin.Context) (uuid.UUID, types.Month, error) {
	var filter HealthScoreQueryFilter
	if err := c.Bind(&filter); err != nil {
		return uuid.Nil, types.Month{}, err
	}

	if filter.UserID == ez_uuid.Nil {
		return uuid.Nil, types.Month{}, errUserParameter
	}

	var user models.User
	err := models.DB.First(&user, filter.UserID.UUID).Error
	if err != nil {
		return uuid.Nil, types.Month{}, err
	}

	month := types.MonthOf(time.Now().In(time.UTC))
	if filter.Month != "" {
		month, err = types.ParseMonth(filter.Month)
		if err != nil {
			return uuid.Nil, types.Month{}, httputil.ErrInvalidMonth
		}
	}

	return user.ID, month, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			HealthScore
// @Success		204
// @Router			/v1/health-score [options]
func OptionsHealthScore(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			HealthScore
// @Success		204
// @Router			/v1/health-score/history [options]
func OptionsHealthScoreHistory(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			HealthScore
// @Success		204
// @Router			/v1/health-score/advice [options]
func OptionsHealthScoreAdvice(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get health score
// @Description	Computes the financial health score of a user for a month and persists a snapshot of it
// @Tags			HealthScore
// @Produce		json
// @Success		200	{object}	HealthScoreResponse
// @Failure		400	{object}	HealthScoreResponse
// @Failure		404	{object}	HealthScoreResponse
// @Failure		500	{object}	HealthScoreResponse
// @Param			user	query	string	true	"ID of the user"
// @Param			month	query	string	false	"Calendar month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/health-score [get]
func GetHealthScore(c *gin.Context) {
	userID, month, err := healthScoreParams(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreResponse{
			Error: &e,
		})
		return
	}

	result, err := health.Evaluate(userID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, newHealthScoreResponse(result, month))
}

// @Summary		Get health score history
// @Description	Returns the health score snapshots of the trailing six months, oldest first
// @Tags			HealthScore
// @Produce		json
// @Success		200	{object}	HealthScoreHistoryResponse
// @Failure		400	{object}	HealthScoreHistoryResponse
// @Failure		404	{object}	HealthScoreHistoryResponse
// @Failure		500	{object}	HealthScoreHistoryResponse
// @Param			user	query	string	true	"ID of the user"
// @Param			month	query	string	false	"Last month of the history in YYYY-MM format. Defaults to the current month."
// @Router			/v1/health-score/history [get]
func GetHealthScoreHistory(c *gin.Context) {
	userID, month, err := healthScoreParams(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreHistoryResponse{
			Error: &e,
		})
		return
	}

	snapshots, err := models.SnapshotHistory(userID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreHistoryResponse{
			Error: &e,
		})
		return
	}

	history := make([]HealthScoreHistoryEntry, 0, len(snapshots))
	for _, snapshot := range snapshots {
		history = append(history, newHealthScoreHistoryEntry(snapshot))
	}

	c.JSON(http.StatusOK, HealthScoreHistoryResponse{
		History: history,
		Count:   len(history),
	})
}

// @Summary		Get advice
// @Description	Returns the cached advice for the month or generates and caches new advice when none exists
// @Tags			HealthScore
// @Produce		json
// @Success		200	{object}	HealthScoreAdviceResponse
// @Failure		400	{object}	HealthScoreAdviceResponse
// @Failure		404	{object}	HealthScoreAdviceResponse
// @Failure		422	{object}	HealthScoreAdviceResponse
// @Failure		500	{object}	HealthScoreAdviceResponse
// @Failure		503	{object}	HealthScoreAdviceResponse
// @Param			user	query	string	true	"ID of the user"
// @Param			month	query	string	false	"Calendar month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/health-score/advice [get]
func GetHealthScoreAdvice(c *gin.Context) {
	userID, month, err := healthScoreParams(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreAdviceResponse{
			Error: &e,
		})
		return
	}

	snapshot, err := models.SnapshotForMonth(userID, month)
	if err != nil {
		respondSnapshotError(c, err)
		return
	}

	if snapshot.CachedAdvice != "" {
		c.JSON(http.StatusOK, HealthScoreAdviceResponse{
			Advice:      snapshot.CachedAdvice,
			GeneratedAt: snapshot.AdviceGeneratedAt,
			Cached:      true,
		})
		return
	}

	generateAdvice(c, userID, month, snapshot)
}

// @Summary		Regenerate advice
// @Description	Generates new advice for the month, replacing the cached one
// @Tags			HealthScore
// @Produce		json
// @Success		200	{object}	HealthScoreAdviceResponse
// @Failure		400	{object}	HealthScoreAdviceResponse
// @Failure		404	{object}	HealthScoreAdviceResponse
// @Failure		422	{object}	HealthScoreAdviceResponse
// @Failure		500	{object}	HealthScoreAdviceResponse
// @Failure		503	{object}	HealthScoreAdviceResponse
// @Param			user	query	string	true	"ID of the user"
// @Param			month	query	string	false	"Calendar month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/health-score/advice [post]
func RegenerateHealthScoreAdvice(c *gin.Context) {
	userID, month, err := healthScoreParams(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreAdviceResponse{
			Error: &e,
		})
		return
	}

	snapshot, err := models.SnapshotForMonth(userID, month)
	if err != nil {
		respondSnapshotError(c, err)
		return
	}

	generateAdvice(c, userID, month, snapshot)
}

// generateAdvice recomputes the health score for the snapshot's month,
// generates advice from it and caches the text on the snapshot. Scoring is
// already persisted at this point, a failing advice call leaves the
// snapshot's scores untouched.
func generateAdvice(c *gin.Context, userID uuid.UUID, month types.Month, snapshot models.HealthScoreSnapshot) {
	if advisor == nil {
		e := advice.ErrUnavailable.Error()
		c.JSON(http.StatusServiceUnavailable, HealthScoreAdviceResponse{
			Error: &e,
		})
		return
	}

	result, err := health.Evaluate(userID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreAdviceResponse{
			Error: &e,
		})
		return
	}

	text, err := advisor.Advise(c.Request.Context(), result)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreAdviceResponse{
			Error: &e,
		})
		return
	}

	generatedAt := time.Now().In(time.UTC)
	err = snapshot.SaveAdvice(text, generatedAt)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), HealthScoreAdviceResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, HealthScoreAdviceResponse{
		Advice:      text,
		GeneratedAt: &generatedAt,
		Cached:      false,
	})
}

// respondSnapshotError maps a snapshot read error, pointing the caller to
// the health score endpoint when no snapshot exists for the month yet.
func respondSnapshotError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrResourceNotFound) {
		e := errNoSnapshot.Error()
		c.JSON(http.StatusNotFound, HealthScoreAdviceResponse{
			Error: &e,
		})
		return
	}

	e := err.Error()
	c.JSON(status(err), HealthScoreAdviceResponse{
		Error: &e,
	})
}

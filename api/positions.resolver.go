package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type positionResponse struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

type listPositionsResponse struct {
	Positions   map[string]positionResponse `json:"positions"`
	TotalWeight float64                     `json:"totalWeight"`
	Complete    bool                        `json:"complete"`
}

func (m ApiHandler) listPositions(c *gin.Context) {
	snapshot := m.AllocationStore.Snapshot()
	positions := make(map[string]positionResponse, len(snapshot.Entries))
	for ticker, entry := range snapshot.Entries {
		positions[ticker] = positionResponse{
			Ticker: entry.Ticker,
			Weight: entry.Weight.InexactFloat64(),
		}
	}

	c.JSON(200, listPositionsResponse{
		Positions:   positions,
		TotalWeight: snapshot.Total.InexactFloat64(),
		Complete:    snapshot.Complete,
	})
}

type addPositionRequest struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

func (m ApiHandler) addPosition(c *gin.Context) {
	var requestBody addPositionRequest
	if err := c.BindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	err := m.AllocationStore.Add(requestBody.Ticker, decimal.NewFromFloat(requestBody.Weight))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	m.listPositions(c)
}

func (m ApiHandler) removePosition(c *gin.Context) {
	m.AllocationStore.Remove(c.Param("ticker"))
	m.listPositions(c)
}

func (m ApiHandler) savePortfolio(c *gin.Context) {
	if err := m.AllocationStore.Persist(c.Request.Context()); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, gin.H{"saved": true})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voxnote/dto"
	"voxnote/processor"
)

// ProcessHandler godoc
// @Summary      Process one transcript
// @Description  Classify a transcript against candidate articles and apply the resulting create/update plan
// @Tags         processing
// @Accept       json
// @Param        request  body  dto.ProcessRequest  true  "Transcript and candidate article ids"
// @Produce      json
// @Success      200  {object}  dto.ProcessResponse
// @Failure      400  {object}  map[string]string
// @Router       /process [post]
func ProcessHandler(svc *processor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ProcessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := svc.Process(c.Request.Context(), req.TranscriptID, req.ArticleIDs, req.UserID)
		c.JSON(http.StatusOK, dto.NewProcessResponse(result, err))
	}
}

// BatchHandler godoc
// @Summary      Process a batch of transcripts
// @Description  Run each transcript/candidate pair independently; per-pair failures land in their own result slot
// @Tags         processing
// @Accept       json
// @Param        request  body  dto.BatchRequest  true  "Ordered transcript/candidate pairs"
// @Produce      json
// @Success      200  {object}  dto.BatchResponse
// @Failure      400  {object}  map[string]string
// @Router       /process/batch [post]
func BatchHandler(svc *processor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pairs := make([]processor.Pair, 0, len(req.Pairs))
		for _, p := range req.Pairs {
			pairs = append(pairs, processor.Pair{TranscriptID: p.TranscriptID, ArticleIDs: p.ArticleIDs})
		}

		batch := svc.ProcessBatch(c.Request.Context(), pairs, req.UserID)
		c.JSON(http.StatusOK, dto.NewBatchResponse(batch))
	}
}

// StatusHandler godoc
// @Summary      Service status
// @Description  Repository connectivity and model configuration health
// @Tags         processing
// @Produce      json
// @Success      200  {object}  processor.StatusReport
// @Router       /process/status [get]
func StatusHandler(svc *processor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Status(c.Request.Context()))
	}
}

// UpdateModelHandler godoc
// @Summary      Upsert a model profile
// @Description  Hot-swaps the named model profile; in-flight calls keep the previous configuration
// @Tags         models
// @Accept       json
// @Param        name     path  string                  true  "Profile name"
// @Param        request  body  dto.UpdateModelRequest  true  "Endpoint, credential and model id"
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /models/{name} [put]
func UpdateModelHandler(svc *processor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateModelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		name := c.Param("name")
		if err := svc.UpdateModelConfig(name, req.URL, req.APIKey, req.ModelName); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated", "profile": name})
	}
}

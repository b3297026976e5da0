package pipeline

import (
	"storyreel/internal/service"
)

// Handler 流水线处理器
// 所有流水线相关的Handler方法都通过这个结构体访问Service
type Handler struct {
	pipelineService service.PipelineService
	finalizeService service.FinalizeService
}

// NewHandler 创建流水线处理器
func NewHandler(pipelineService service.PipelineService, finalizeService service.FinalizeService) *Handler {
	return &Handler{
		pipelineService: pipelineService,
		finalizeService: finalizeService,
	}
}

package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"storyreel/internal/ai/component"
	"storyreel/internal/config"
	"storyreel/internal/pipeline"
	"storyreel/internal/pkg/id"
)

const scriptSystemPrompt = `You are a short-video scriptwriter. Given a topic, you write a script split into scenes.
Respond with a JSON array only, no markdown fences, no commentary. Each element has:
- "title": a short scene title
- "narration": the voiceover text for the scene, one or two sentences
- "description": a visual description of the scene for an image generation model
Write between 3 and 8 scenes.`

// ScriptChain 脚本生成链
// 工作流: 用户提示词 -> ChatModel -> 解析为场景列表
type ScriptChain struct {
	chatModel model.BaseChatModel
}

// scriptScene 模型输出的场景结构
type scriptScene struct {
	Title       string `json:"title"`
	Narration   string `json:"narration"`
	Description string `json:"description"`
}

// NewScriptChain 创建脚本生成链
func NewScriptChain(ctx context.Context, cfg *config.AIConfig) (*ScriptChain, error) {
	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &ScriptChain{
		chatModel: chatModel,
	}, nil
}

// Generate 根据提示词生成分镜脚本
func (c *ScriptChain) Generate(ctx context.Context, prompt string) ([]pipeline.Scene, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	messages := []*schema.Message{
		schema.SystemMessage(scriptSystemPrompt),
		schema.UserMessage(prompt),
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}

	scenes, err := parseScenes(resp.Content)
	if err != nil {
		log.Error().Err(err).Str("content", resp.Content).Msg("Failed to parse script response")
		return nil, fmt.Errorf("parse script response: %w", err)
	}

	log.Info().Int("scene_count", len(scenes)).Msg("Script generated")
	return scenes, nil
}

// parseScenes 解析模型输出为场景列表
// 容忍模型包裹 markdown 代码块的情况
func parseScenes(content string) ([]pipeline.Scene, error) {
	content = stripCodeFence(content)

	var raw []scriptScene
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("script contains no scenes")
	}

	scenes := make([]pipeline.Scene, 0, len(raw))
	for _, s := range raw {
		scenes = append(scenes, pipeline.Scene{
			ID:          id.New(),
			Title:       strings.TrimSpace(s.Title),
			Narration:   strings.TrimSpace(s.Narration),
			Description: strings.TrimSpace(s.Description),
		})
	}
	return scenes, nil
}

// stripCodeFence 去掉 ```json ... ``` 包裹
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

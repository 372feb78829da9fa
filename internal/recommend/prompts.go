// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/horizon/internal/llm"
)

const (
	edgesSystem = `Ты строишь ориентированный граф интересов пользователя. Генерируй связи только в формате JSON: { "edges": [ { "source": "...", "target": "..." } ] }. Никаких комментариев.`
	edgesUser   = "У тебя есть интересы: %s. Соедини смысловые пары стрелками. Правила: максимум %d связи на интерес, избегай полного графа, не соединяй одинаковые узлы, соединяй по смысловой близости (тематики, контекст). Верни ТОЛЬКО JSON с edges, без текста."

	interestsSystem = "Отвечай только JSON массивом строк."
	interestsUser   = "Ты предлагаешь новые интересы на русском языке. Учитывай список пользователя: %s. Дай %d коротких интересов (одно- или двусловные), которые дополняют их карту знаний. Верни только JSON массив строк без пояснений."

	videosSystem = "Генерируй только JSON массив строк без пояснений."
	videosUser   = "Ты генератор поисковых запросов для YouTube. Дай 10 коротких запросов на русском (3–7 слов) на основе интересов пользователя: %s. Запросы должны быть разнообразными (лекция/разбор/гайд/интервью/кейсы/история/введение). Верни ТОЛЬКО JSON массив строк. Никакого текста кроме JSON."
)

func edgesPrompt(interests []string, maxPerNode int) llm.Prompt {
	return llm.Prompt{
		System:      edgesSystem,
		User:        fmt.Sprintf(edgesUser, strings.Join(interests, ", "), maxPerNode),
		Temperature: 0.6,
		MaxTokens:   200,
	}
}

func interestsPrompt(interests []string, limit int) llm.Prompt {
	return llm.Prompt{
		System:      interestsSystem,
		User:        fmt.Sprintf(interestsUser, strings.Join(interests, ", "), limit),
		Temperature: 0.7,
		MaxTokens:   220,
	}
}

func videosPrompt(interests []string) llm.Prompt {
	return llm.Prompt{
		System:      videosSystem,
		User:        fmt.Sprintf(videosUser, strings.Join(interests, ", ")),
		Temperature: 0.8,
		MaxTokens:   256,
	}
}

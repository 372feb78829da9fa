// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package recommend

import (
	"sort"
	"strings"
)

// Profile is a named cluster of related interests.
type Profile struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// FallbackProfile describes a user whose interests match no profile.
var FallbackProfile = Profile{
	Name:        "Исследователь смыслов",
	Description: "Собирает идеи из разных областей и соединяет их в свою карту.",
	Keywords:    []string{"мышление", "идеи", "развитие", "контекст", "обучение"},
}

// Profiles is the built-in profile table, in tie-break order.
var Profiles = []Profile{
	{
		Name:        "Технологический визионер",
		Description: "Следит за тем, как технологии меняют мир, и первым пробует новое.",
		Keywords:    []string{"технологии", "ai", "искусственный интеллект", "программирование", "робототехника", "стартапы"},
	},
	{
		Name:        "Предприниматель",
		Description: "Видит возможности и превращает идеи в работающие продукты.",
		Keywords:    []string{"бизнес", "предпринимательство", "финансы", "маркетинг", "продажи", "инвестиции"},
	},
	{
		Name:        "Эстет-созидатель",
		Description: "Ценит форму, цвет и смысл, создаёт красивое и удобное.",
		Keywords:    []string{"дизайн", "искусство", "фотография", "архитектура", "типографика", "музыка"},
	},
	{
		Name:        "Мыслитель",
		Description: "Задаёт большие вопросы и ищет глубинные причины.",
		Keywords:    []string{"философия", "психология", "история", "этика", "литература", "социология"},
	},
	{
		Name:        "Исследователь природы",
		Description: "Любопытство ведёт его от космоса до клетки.",
		Keywords:    []string{"наука", "физика", "биология", "космос", "экология", "математика"},
	},
	{
		Name:        "Лидер команды",
		Description: "Собирает людей вокруг цели и помогает им расти.",
		Keywords:    []string{"лидерство", "коммуникация", "менеджмент", "soft skills", "переговоры", "коучинг"},
	},
	{
		Name:        "Мастер самодисциплины",
		Description: "Строит систему привычек и бережёт энергию.",
		Keywords:    []string{"продуктивность", "саморазвитие", "самодисциплина", "спорт", "здоровье", "медитация"},
	},
	{
		Name:        "Путешественник",
		Description: "Собирает впечатления, языки и культуры.",
		Keywords:    []string{"путешествия", "языки", "культура", "английский язык", "кулинария", "антропология"},
	},
}

// Extras are appended to profile keywords by the suggestion fallback.
var Extras = []string{
	"робототехника",
	"цифровая этика",
	"поведенческая экономика",
	"устойчивые города",
	"микрообучение",
	"нейромаркетинг",
	"креативные индустрии",
	"большие данные",
	"web3 и децентрализация",
	"сценарное планирование",
	"история технологий",
}

// ProfileScore is a profile with the number of its keywords matched.
type ProfileScore struct {
	Profile Profile
	Score   int
}

// RankProfiles scores every profile against interests and sorts by score,
// highest first, keeping table order among equal scores. A keyword matches
// when it contains an interest or an interest contains it, ignoring case.
func RankProfiles(interests []string) []ProfileScore {
	normalized := make([]string, 0, len(interests))
	for _, i := range interests {
		if i = strings.ToLower(strings.TrimSpace(i)); i != "" {
			normalized = append(normalized, i)
		}
	}

	ranked := make([]ProfileScore, len(Profiles))
	for i, p := range Profiles {
		score := 0
		for _, kw := range p.Keywords {
			key := strings.ToLower(kw)
			for _, interest := range normalized {
				if strings.Contains(interest, key) || strings.Contains(key, interest) {
					score++
					break
				}
			}
		}
		ranked[i] = ProfileScore{Profile: p, Score: score}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Score > ranked[b].Score })
	return ranked
}

// DeriveProfile returns the best-matching profile, or FallbackProfile when
// nothing matches.
func DeriveProfile(interests []string) Profile {
	ranked := RankProfiles(interests)
	if len(ranked) == 0 || ranked[0].Score == 0 {
		return FallbackProfile
	}
	return ranked[0].Profile
}

// FallbackInterests suggests up to limit interests without the LLM: keywords
// of every matching profile (and of the top four regardless), then Extras,
// skipping anything already present and repeated entries.
func FallbackInterests(interests []string, limit int) []string {
	present := make(map[string]struct{}, len(interests))
	for _, i := range interests {
		present[strings.ToLower(i)] = struct{}{}
	}

	var pool []string
	for idx, entry := range RankProfiles(interests) {
		if entry.Score == 0 && idx >= 4 {
			continue
		}
		pool = append(pool, entry.Profile.Keywords...)
	}
	pool = append(pool, Extras...)

	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, len(pool))
	for _, kw := range pool {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := present[strings.ToLower(kw)]; ok {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
		if len(out) == limit {
			break
		}
	}
	return out
}

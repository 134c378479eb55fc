// Package seed loads the starter catalog: the five levels, a handful of
// sample words with their related-word links, and a demo learner. Seeding
// is idempotent; a store that already has categories is left untouched.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/store"
)

type categoryRecord struct {
	name        string
	description string
	level       domain.Level
}

type wordRecord struct {
	ottoman        string
	turkish        string
	meaning        string
	exampleOttoman string
	exampleTurkish string
	category       string
	difficulty     domain.Difficulty
	etymology      string
	relatedTo      string // turkish text of the word this one relates to
}

var categories = []categoryRecord{
	{"Temel (A1)", "Temel seviye Osmanlıca kelimeler", domain.LevelBasic},
	{"Orta (A2-B1)", "Orta seviye Osmanlıca kelimeler", domain.LevelIntermediate},
	{"İleri (B2-C1)", "İleri seviye Osmanlıca kelimeler", domain.LevelAdvanced},
	{"Deyimler", "Osmanlıca deyimler", domain.LevelIdioms},
	{"Günlük Konuşma", "Günlük konuşmada kullanılan Osmanlıca kelimeler", domain.LevelDaily},
}

var words = []wordRecord{
	{
		ottoman: "كتاب", turkish: "kitap",
		meaning:        "Basılı veya yazılı sayfalardan oluşan ciltli eser.",
		exampleOttoman: "كتابى اوقويورم", exampleTurkish: "Kitabı okuyorum.",
		category: "Temel (A1)", difficulty: domain.DifficultyBasic,
		etymology: "Arapça kökenli",
	},
	{
		ottoman: "قلم", turkish: "kalem",
		meaning:        "Yazı yazmaya yarayan araç.",
		exampleOttoman: "قلم ايله يازيورم", exampleTurkish: "Kalem ile yazıyorum.",
		category: "Temel (A1)", difficulty: domain.DifficultyBasic,
		etymology: "Arapça kökenli",
	},
	{
		ottoman: "مكتب", turkish: "mektep",
		meaning:        "Okul, öğretim kurumu.",
		exampleOttoman: "مكتبه كيديورم", exampleTurkish: "Mektebe gidiyorum.",
		category: "Orta (A2-B1)", difficulty: domain.DifficultyIntermediate,
		etymology: "Arapça kökenli",
	},
	{
		ottoman: "تشرين اول", turkish: "teşrinievvel",
		meaning:        "Ekim ayı (Rumi takvimde).",
		exampleOttoman: "تشرين اول آيندا", exampleTurkish: "Teşrinievvel ayında.",
		category: "İleri (B2-C1)", difficulty: domain.DifficultyAdvanced,
		etymology: "Arapça kökenli",
	},
	{
		ottoman: "سو", turkish: "su",
		meaning:        "İçilebilen sıvı madde, hayat kaynağı.",
		exampleOttoman: "صو ايچيورم", exampleTurkish: "Su içiyorum.",
		category: "Temel (A1)", difficulty: domain.DifficultyBasic,
		etymology: "Türkçe kökenli",
	},
	{
		ottoman: "طعام", turkish: "taam",
		meaning:        "Yemek, aş, yiyecek.",
		exampleOttoman: "طعام يييورم", exampleTurkish: "Taam yiyorum.",
		category: "Orta (A2-B1)", difficulty: domain.DifficultyIntermediate,
		etymology: "Arapça kökenli",
	},
	{
		ottoman: "ساعت", turkish: "saat",
		meaning:        "Zaman ölçme aracı, 60 dakikadan oluşan zaman birimi.",
		exampleOttoman: "ساعت قاچ؟", exampleTurkish: "Saat kaç?",
		category: "Orta (A2-B1)", difficulty: domain.DifficultyIntermediate,
		etymology: "Arapça kökenli kelime. ساعة (sāʿat) kelimesinden Osmanlı Türkçesine geçmiştir.",
	},
	{
		ottoman: "دقيقه", turkish: "dakika",
		meaning:        "60 saniyeden oluşan zaman birimi.",
		exampleOttoman: "بر دقيقه بكله", exampleTurkish: "Bir dakika bekle.",
		category: "Orta (A2-B1)", difficulty: domain.DifficultyIntermediate,
		etymology: "Arapça kökenli", relatedTo: "saat",
	},
	{
		ottoman: "وقت", turkish: "vakit",
		meaning:        "Zaman, çağ.",
		exampleOttoman: "وقت كلدي", exampleTurkish: "Vakit geldi.",
		category: "Orta (A2-B1)", difficulty: domain.DifficultyIntermediate,
		etymology: "Arapça kökenli", relatedTo: "saat",
	},
	{
		ottoman: "زمان", turkish: "zaman",
		meaning:        "Süre, vakit.",
		exampleOttoman: "او زماندا", exampleTurkish: "O zamanda.",
		category: "Orta (A2-B1)", difficulty: domain.DifficultyIntermediate,
		etymology: "Arapça kökenli", relatedTo: "saat",
	},
}

const (
	demoHandle     = "demo"
	demoCredential = "password123"
)

// Stores bundles the store interfaces seeding writes to.
type Stores struct {
	Categories store.CategoryStore
	Words      store.WordStore
	Learners   store.LearnerStore
}

// Seed applies the starter data. It is a no-op when the store already has
// categories, so restarts never duplicate the catalog. Within one run,
// words whose turkish text is already present (case-insensitively) are
// skipped rather than duplicated.
func Seed(ctx context.Context, stores Stores, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "seed"))

	existing, err := stores.Categories.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect categories: %w", err)
	}
	if len(existing) > 0 {
		log.Debug("store already seeded, skipping",
			slog.Int("category_count", len(existing)))
		return nil
	}

	categoryIDs := make(map[string]int64, len(categories))
	for _, record := range categories {
		category := &domain.Category{
			Name:        record.name,
			Description: record.description,
			Level:       record.level,
		}
		if err := stores.Categories.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", record.name, err)
		}
		categoryIDs[record.name] = category.ID
	}

	wordIDs := make(map[string]int64, len(words))
	for _, record := range words {
		key := strings.ToLower(record.turkish)
		if _, ok := wordIDs[key]; ok {
			log.Debug("skipping duplicate seed word", slog.String("turkish", record.turkish))
			continue
		}

		word := &domain.Word{
			Ottoman:        record.ottoman,
			Turkish:        record.turkish,
			Meaning:        record.meaning,
			ExampleOttoman: record.exampleOttoman,
			ExampleTurkish: record.exampleTurkish,
			CategoryID:     categoryIDs[record.category],
			Difficulty:     record.difficulty,
			Etymology:      record.etymology,
		}
		if err := stores.Words.CreateWord(ctx, word); err != nil {
			return fmt.Errorf("failed to seed word %q: %w", record.turkish, err)
		}
		wordIDs[key] = word.ID
	}

	for _, record := range words {
		if record.relatedTo == "" {
			continue
		}
		targetID, ok := wordIDs[strings.ToLower(record.relatedTo)]
		if !ok {
			return fmt.Errorf("seed word %q relates to unknown word %q", record.turkish, record.relatedTo)
		}
		if err := stores.Words.AddRelated(ctx, targetID, wordIDs[strings.ToLower(record.turkish)]); err != nil {
			return fmt.Errorf("failed to link seed words %q -> %q: %w", record.relatedTo, record.turkish, err)
		}
	}

	if _, err := stores.Learners.CreateLearner(ctx, demoHandle, demoCredential); err != nil {
		return fmt.Errorf("failed to seed demo learner: %w", err)
	}

	log.Info("starter data seeded",
		slog.Int("categories", len(categories)),
		slog.Int("words", len(wordIDs)))
	return nil
}

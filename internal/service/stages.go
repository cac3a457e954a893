// internal/service/stages.go
package service

import (
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/repository"

	"gorm.io/gorm"
)

// StageServices は5つのステップのサービスをまとめたもの
type StageServices struct {
	Filter      StageService[model.FilterItem]
	Organize    StageService[model.OrganizeItem]
	Clean       StageService[model.CleanReflection]
	Standardize StageService[model.Standard]
	Sustain     StageService[model.SustainReminder]
}

func isBool(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

func isString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

func isPriority(v interface{}) bool {
	switch p := v.(type) {
	case string:
		return model.PriorityLevel(p).Valid()
	case model.PriorityLevel:
		return p.Valid()
	}
	return false
}

// NewStageServices は各ステップのリポジトリ・並び順・更新可能なカラムを組み立てます
func NewStageServices(db *gorm.DB, areaRepo repository.AreaRepository, cal Calendar) *StageServices {
	return &StageServices{
		Filter: NewStageService[model.FilterItem](db,
			repository.NewGormStageRepository[model.FilterItem]("created_at"), areaRepo,
			StageOptions[model.FilterItem]{
				Step:      model.StepFilter,
				Updatable: map[string]func(interface{}) bool{"should_keep": isBool},
				Partition: func(items []*model.FilterItem) map[string][]*model.FilterItem {
					keep, remove := model.PartitionFilterItems(items)
					return map[string][]*model.FilterItem{"keep": keep, "remove": remove}
				},
			}, cal),
		Organize: NewStageService[model.OrganizeItem](db,
			repository.NewGormStageRepository[model.OrganizeItem]("created_at"), areaRepo,
			StageOptions[model.OrganizeItem]{
				Step: model.StepOrganize,
				Updatable: map[string]func(interface{}) bool{
					"priority_level": isPriority,
					"fixed_position": isString,
				},
				Partition: func(items []*model.OrganizeItem) map[string][]*model.OrganizeItem {
					out := make(map[string][]*model.OrganizeItem, 3)
					for level, bucket := range model.BucketOrganizeItems(items) {
						out[string(level)] = bucket
					}
					return out
				},
			}, cal),
		Clean: NewStageService[model.CleanReflection](db,
			repository.NewGormStageRepository[model.CleanReflection]("reflection_date"), areaRepo,
			StageOptions[model.CleanReflection]{
				Step:      model.StepClean,
				Updatable: map[string]func(interface{}) bool{"action_taken": isString},
			}, cal),
		Standardize: NewStageService[model.Standard](db,
			repository.NewGormStageRepository[model.Standard]("created_at"), areaRepo,
			StageOptions[model.Standard]{Step: model.StepStandardize}, cal),
		Sustain: NewStageService[model.SustainReminder](db,
			repository.NewGormStageRepository[model.SustainReminder]("created_at"), areaRepo,
			StageOptions[model.SustainReminder]{Step: model.StepSustain}, cal),
	}
}

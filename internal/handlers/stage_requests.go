// internal/handlers/stage_requests.go
package handlers

import (
	"net/http"

	"go_5s_keep/internal/model"
	"go_5s_keep/internal/service"
	"go_5s_keep/internal/webutil"
)

func NewFilterHandler(s service.StageService[model.FilterItem]) *StageHandler[model.FilterItem] {
	return &StageHandler[model.FilterItem]{
		service: s,
		decodeCreate: func(r *http.Request) (*model.FilterItem, error) {
			var req model.CreateFilterItemRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			return &model.FilterItem{ItemText: req.ItemText}, nil
		},
		decodePatch: func(r *http.Request) (map[string]interface{}, error) {
			var req model.PatchFilterItemRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			return map[string]interface{}{"should_keep": *req.ShouldKeep}, nil
		},
	}
}

func NewOrganizeHandler(s service.StageService[model.OrganizeItem]) *StageHandler[model.OrganizeItem] {
	return &StageHandler[model.OrganizeItem]{
		service: s,
		decodeCreate: func(r *http.Request) (*model.OrganizeItem, error) {
			var req model.CreateOrganizeItemRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			return &model.OrganizeItem{ItemText: req.ItemText}, nil
		},
		decodePatch: func(r *http.Request) (map[string]interface{}, error) {
			var req model.PatchOrganizeItemRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			fields := make(map[string]interface{}, 2)
			if req.PriorityLevel != nil {
				fields["priority_level"] = *req.PriorityLevel
			}
			if req.FixedPosition != nil {
				fields["fixed_position"] = *req.FixedPosition
			}
			return fields, nil
		},
	}
}

func NewCleanHandler(s service.StageService[model.CleanReflection]) *StageHandler[model.CleanReflection] {
	return &StageHandler[model.CleanReflection]{
		service: s,
		decodeCreate: func(r *http.Request) (*model.CleanReflection, error) {
			var req model.CreateCleanReflectionRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			return &model.CleanReflection{ReflectionText: req.ReflectionText}, nil
		},
		decodePatch: func(r *http.Request) (map[string]interface{}, error) {
			var req model.PatchCleanReflectionRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			return map[string]interface{}{"action_taken": *req.ActionTaken}, nil
		},
	}
}

func NewStandardHandler(s service.StageService[model.Standard]) *StageHandler[model.Standard] {
	return &StageHandler[model.Standard]{
		service: s,
		decodeCreate: func(r *http.Request) (*model.Standard, error) {
			var req model.CreateStandardRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			return &model.Standard{Trigger: req.Trigger, Action: req.Action}, nil
		},
	}
}

func NewSustainHandler(s service.StageService[model.SustainReminder]) *StageHandler[model.SustainReminder] {
	return &StageHandler[model.SustainReminder]{
		service: s,
		decodeCreate: func(r *http.Request) (*model.SustainReminder, error) {
			var req model.CreateSustainReminderRequest
			if err := webutil.DecodeAndValidate(r, &req); err != nil {
				return nil, err
			}
			return &model.SustainReminder{WhyText: req.WhyText}, nil
		},
	}
}

package cmd

import (
	"github.com/etnz/solarroi"
	"github.com/etnz/solarroi/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion description of the sroi commands.
//
// Install it in bash with:
//
//	complete -C sroi sroi
func Completion() *complete.Command {
	var stages predict.Set
	for _, st := range solarroi.Stages {
		stages = append(stages, string(st))
	}
	sections := predict.Set(solarroi.Sections())
	tracks := predict.Set{"1", "2", "3"}
	var variables predict.Set
	for _, d := range solarroi.Catalog() {
		variables = append(variables, d.ID+"=", d.ID)
	}
	topics, _ := docs.GetAllTopics()
	jsonFiles := predict.Files("*.json*")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"backend":    predict.Set{"dir", "sqlite", "redis", "memory"},
			"path":       predict.Files("*"),
			"redis-addr": predict.Something,
			"collection": predict.Something,
			"plain":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"list": {Flags: map[string]complete.Predictor{
				"q":      predict.Something,
				"stage":  stages,
				"region": predict.Something,
			}},
			"stats": {},
			"show":  {Flags: map[string]complete.Predictor{"track": tracks}},
			"vars": {Flags: map[string]complete.Predictor{
				"q":       predict.Something,
				"changed": predict.Nothing,
			}},
			"compute": {
				Flags: map[string]complete.Predictor{
					"p":     predict.Something,
					"f":     predict.Files("*"),
					"track": tracks,
					"json":  predict.Nothing,
				},
				Args: variables,
			},
			"query": {},
			"set":   {Args: variables},
			"reset": {
				Flags: map[string]complete.Predictor{"section": sections},
				Args:  variables,
			},
			"track": {Args: tracks},
			"team": {Flags: map[string]complete.Predictor{
				"avp":       predict.Something,
				"agmm":      predict.Something,
				"organizer": predict.Something,
				"managers":  predict.Something,
				"tax":       predict.Something,
			}},
			"new": {Flags: map[string]complete.Predictor{
				"name":     predict.Something,
				"location": predict.Something,
				"stage":    stages,
				"capacity": predict.Something,
			}},
			"export": {Flags: map[string]complete.Predictor{
				"o":   jsonFiles,
				"all": predict.Nothing,
			}},
			"import": {
				Flags: map[string]complete.Predictor{"all": predict.Nothing},
				Args:  jsonFiles,
			},
			"lens": {Args: predict.Set{string(solarroi.Executive), string(solarroi.Practitioner)}},
			"topic": {
				Flags: map[string]complete.Predictor{"l": predict.Nothing},
				Args:  predict.Set(topics),
			},
			"assist": {Flags: map[string]complete.Predictor{"model": predict.Something}},
		},
	}
}

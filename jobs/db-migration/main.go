package main

import "log/slog"

func main() {
	switch conf.TaskConfigs.DropIndexes {
	case DropIndexesModeAll:
		slog.Info("Dropping all indexes for assessments collection")
		assessmentDBService.DropIndexes(true)
	case DropIndexesModeDefaults:
		slog.Info("Dropping default indexes for assessments collection")
		assessmentDBService.DropIndexes(false)
	}

	if conf.TaskConfigs.CreateIndexes {
		slog.Info("Creating default indexes for assessments collection")
		assessmentDBService.CreateDefaultIndexes()
	}

	slog.Info("DB migration finished")
}

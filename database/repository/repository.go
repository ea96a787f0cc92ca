package repository

import (
	scheduleRepo "github.com/Gidy30B/project02-sub000/database/repository/schedule"
)

// Re-export the ScheduleRepository interface and constructors.
type ScheduleRepository = scheduleRepo.ScheduleRepository

type MongoScheduleRepo = scheduleRepo.MongoScheduleRepo

var NewMongoScheduleRepo = scheduleRepo.NewMongoScheduleRepo

var NewMemoryScheduleRepo = scheduleRepo.NewMemoryScheduleRepo

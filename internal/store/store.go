package store

import (
	"gorm.io/gorm"
)

type Store interface {
	Job() Job
	MachinePriority() MachinePriority
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db              *gorm.DB
	job             Job
	machinePriority MachinePriority
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:              db,
		job:             NewJobStore(db),
		machinePriority: NewMachinePriorityStore(db),
	}
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) MachinePriority() MachinePriority {
	return s.machinePriority
}

func (s *DataStore) InitialMigration() error {
	if err := s.job.InitialMigration(); err != nil {
		return err
	}
	return s.machinePriority.InitialMigration()
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

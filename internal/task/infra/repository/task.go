package repository

import (
	"context"
	"time"

	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

type TaskModel struct {
	ID          string         `gorm:"type:varchar(36);primaryKey"`
	Position    int            `gorm:"not null;index:idx_tasks_position"`
	Title       string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text;not null"`
	Priority    string         `gorm:"type:varchar(16);not null;index:idx_tasks_priority"`
	Completed   bool           `gorm:"not null;index:idx_tasks_completed"`
	Category    string         `gorm:"type:varchar(255);not null;default:''"`
	DueDate     *time.Time     `gorm:"type:date"`
	Recurrence  string         `gorm:"type:varchar(16);not null;default:''"`
	CreatedAt   time.Time      `gorm:"not null;precision:6;autoCreateTime:false"`
	CompletedAt *time.Time     `gorm:"precision:6"`
	Tags        []TagModel     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Subtasks    []SubtaskModel `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

type TagModel struct {
	TaskID   string `gorm:"type:varchar(36);primaryKey"`
	Position int    `gorm:"primaryKey"`
	Tag      string `gorm:"type:varchar(255);not null;index:idx_task_tags_tag"`
}

func (TagModel) TableName() string {
	return "task_tags"
}

type SubtaskModel struct {
	TaskID    string `gorm:"type:varchar(36);primaryKey"`
	SubtaskID int    `gorm:"primaryKey;autoIncrement:false"`
	Position  int    `gorm:"not null"`
	Title     string `gorm:"type:text;not null"`
	Completed bool   `gorm:"not null"`
}

func (SubtaskModel) TableName() string {
	return "task_subtasks"
}

type taskSnapshotRepository struct {
	db *gorm.DB
}

func NewTaskSnapshotRepository(db *gorm.DB) domaintask.SnapshotRepository {
	return &taskSnapshotRepository{db: db}
}

// SaveSnapshot replaces every stored row with tasks in a single transaction.
func (r *taskSnapshotRepository) SaveSnapshot(ctx context.Context, tasks []*domaintask.Task) error {
	taskRecords := make([]TaskModel, 0, len(tasks))
	tagRecords := make([]TagModel, 0)
	subtaskRecords := make([]SubtaskModel, 0)

	for i, task := range tasks {
		if task == nil {
			return ErrTaskRequired
		}

		record := toTaskModel(task, i)
		taskRecords = append(taskRecords, record)
		tagRecords = append(tagRecords, record.Tags...)
		subtaskRecords = append(subtaskRecords, record.Subtasks...)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		if err := wipe.Delete(&TagModel{}).Error; err != nil {
			return err
		}

		if err := wipe.Delete(&SubtaskModel{}).Error; err != nil {
			return err
		}

		if err := wipe.Delete(&TaskModel{}).Error; err != nil {
			return err
		}

		if len(taskRecords) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(taskRecords, insertBatchSize).Error; err != nil {
				return err
			}
		}

		if len(tagRecords) > 0 {
			if err := tx.CreateInBatches(tagRecords, insertBatchSize).Error; err != nil {
				return err
			}
		}

		if len(subtaskRecords) > 0 {
			if err := tx.CreateInBatches(subtaskRecords, insertBatchSize).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *taskSnapshotRepository) LoadSnapshot(ctx context.Context) ([]*domaintask.Task, error) {
	var records []TaskModel

	if err := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("position ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	tasks := make([]*domaintask.Task, 0, len(records))

	for _, record := range records {
		task, err := fromTaskModel(record)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func toTaskModel(task *domaintask.Task, position int) TaskModel {
	id := task.ID().String()

	tags := task.Tags()
	tagRecords := make([]TagModel, 0, len(tags))

	for i, tag := range tags {
		tagRecords = append(tagRecords, TagModel{TaskID: id, Position: i, Tag: tag})
	}

	subtasks := task.Subtasks()
	subtaskRecords := make([]SubtaskModel, 0, len(subtasks))

	for i, st := range subtasks {
		subtaskRecords = append(subtaskRecords, SubtaskModel{
			TaskID:    id,
			SubtaskID: int(st.ID),
			Position:  i,
			Title:     st.Title,
			Completed: st.Completed,
		})
	}

	return TaskModel{
		ID:          id,
		Position:    position,
		Title:       task.Title(),
		Description: task.Description(),
		Priority:    string(task.Priority()),
		Completed:   task.Completed(),
		Category:    task.Category(),
		DueDate:     task.DueDate(),
		Recurrence:  string(task.Recurrence()),
		CreatedAt:   task.CreatedAt(),
		CompletedAt: task.CompletedAt(),
		Tags:        tagRecords,
		Subtasks:    subtaskRecords,
	}
}

func fromTaskModel(record TaskModel) (*domaintask.Task, error) {
	taskID, err := domaintask.NewIDFromString(record.ID)
	if err != nil {
		return nil, err
	}

	priority, err := domaintask.NewPriority(record.Priority)
	if err != nil {
		return nil, err
	}

	recurrence, err := domaintask.NewRecurrence(record.Recurrence)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(record.Tags))
	for _, tag := range record.Tags {
		tags = append(tags, tag.Tag)
	}

	subtasks := make([]domaintask.Subtask, 0, len(record.Subtasks))
	for _, st := range record.Subtasks {
		subtasks = append(subtasks, domaintask.Subtask{
			ID:        domaintask.SubtaskID(st.SubtaskID),
			Title:     st.Title,
			Completed: st.Completed,
		})
	}

	return domaintask.NewTask(
		taskID,
		record.Title,
		priority,
		domaintask.Details{
			Description: record.Description,
			Category:    record.Category,
			DueDate:     record.DueDate,
			Recurrence:  recurrence,
		},
		record.Completed,
		tags,
		subtasks,
		record.CreatedAt,
		record.CompletedAt,
	)
}

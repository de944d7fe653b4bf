package queue

import (
	"encoding/json"
	"time"

	"github.com/gearmart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskWarrantySweep 保修过期批量扫描任务
	TaskWarrantySweep = constants.TaskWarrantySweep
)

// WarrantySweepPayload 保修过期扫描任务载荷
type WarrantySweepPayload struct {
	Before time.Time `json:"before"` // 截止时间，在此之前到期的保修被置为 expired
}

// NewWarrantySweepTask 创建保修过期扫描任务
func NewWarrantySweepTask(payload WarrantySweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWarrantySweep, body), nil
}

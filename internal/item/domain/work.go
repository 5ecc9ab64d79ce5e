package domain

const (
	//QueueName definition queue name
	QueueName = "image_cleanup"
)

// ImageCleanupJob 上傳成功但建立紀錄失敗, 待刪除的 object
type ImageCleanupJob struct {
	ObjectName string `json:"object_name"`
	Reason     string `json:"reason"`
}

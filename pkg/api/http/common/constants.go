package common

const (
	// HEADER_USER_ID carries the calling user, set by the auth proxy in front of us
	HEADER_USER_ID = "X-User-ID"

	// API_PIPELINE_TASKS is used to create a task running a pipeline
	API_PIPELINE_TASKS = "/api/v1/pipelines/{pipe_id}/tasks"

	// API_TASKS is used to list tasks, or delete them by state
	API_TASKS = "/api/v1/tasks"

	// API_TASK is used to delete a task
	API_TASK = "/api/v1/tasks/{id}"

	// API_TASK_CANCEL is used to cancel a task
	API_TASK_CANCEL = "/api/v1/tasks/{id}/cancel"

	// TASKS_PROCESS is where the queue forwards task deliveries
	TASKS_PROCESS = "/tasks/process/{key}"

	// TASKS_RESUME is where remote jobs report back to wake a suspended task
	TASKS_RESUME = "/tasks/resume/{key}/{task_id}/{token}"

	// CRON_BOXES is hit on a schedule to refresh the worker box inventory
	CRON_BOXES = "/cron/boxes/{key}"

	// CALLBACKS accepts (and logs) task callbacks
	CALLBACKS = "/callbacks"

	HEALTH  = "/healthz"
	METRICS = "/metrics"
)

package services

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/greenvalley/farmtodoor-api/models"
	"github.com/greenvalley/farmtodoor-api/utils"
)

type NotificationTaskKind string

const (
	TaskEmail       NotificationTaskKind = "email"
	TaskChatMessage NotificationTaskKind = "chat"
	TaskInvoice     NotificationTaskKind = "invoice"
)

type NotificationTask struct {
	Kind  NotificationTaskKind
	Order models.Order
	User  models.User
}

type TaskResult struct {
	Task NotificationTask
	Err  error
}

// Notifier is the outbound side of order placement: confirmation email,
// chat-app message and invoice-PDF request all run off the main mutation
// path on a worker fed by a bounded queue. Deliveries are best effort;
// a failure is reported to the result callback and never retried.
type Notifier struct {
	tasks    chan NotificationTask
	client   *resty.Client
	onResult func(TaskResult)
	wg       sync.WaitGroup

	chatWebhookURL    string
	invoiceServiceURL string
}

func NewNotifier(onResult func(TaskResult)) *Notifier {
	if onResult == nil {
		onResult = logTaskResult
	}
	return &Notifier{
		tasks:             make(chan NotificationTask, 64),
		client:            resty.New().SetTimeout(10 * time.Second),
		onResult:          onResult,
		chatWebhookURL:    os.Getenv("CHAT_WEBHOOK_URL"),
		invoiceServiceURL: os.Getenv("INVOICE_SERVICE_URL"),
	}
}

func (n *Notifier) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
}

// Enqueue never blocks; when the queue is full the task is dropped and
// logged, matching the fire-and-forget contract.
func (n *Notifier) Enqueue(task NotificationTask) {
	select {
	case n.tasks <- task:
	default:
		log.Printf("notifier queue full, dropping %s task for order #%d", task.Kind, task.Order.ID)
	}
}

func (n *Notifier) Close() {
	close(n.tasks)
	n.wg.Wait()
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for task := range n.tasks {
		n.onResult(TaskResult{Task: task, Err: n.dispatch(task)})
	}
}

func (n *Notifier) dispatch(task NotificationTask) error {
	switch task.Kind {
	case TaskEmail:
		return utils.SendOrderConfirmation(task.User.Email, task.Order)
	case TaskChatMessage:
		return n.sendChatMessage(task)
	case TaskInvoice:
		return n.requestInvoice(task)
	default:
		return fmt.Errorf("unknown notification task kind %q", task.Kind)
	}
}

func (n *Notifier) sendChatMessage(task NotificationTask) error {
	if n.chatWebhookURL == "" {
		return fmt.Errorf("CHAT_WEBHOOK_URL not configured")
	}

	message := utils.BuildOrderMessage(task.Order, task.User)
	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"phone":    task.User.Phone,
			"text":     message,
			"deepLink": "https://wa.me/?text=" + url.QueryEscape(message),
		}).
		Post(n.chatWebhookURL)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("chat webhook returned %d: %s", resp.StatusCode(), resp.Body())
	}
	return nil
}

func (n *Notifier) requestInvoice(task NotificationTask) error {
	if n.invoiceServiceURL == "" {
		return fmt.Errorf("INVOICE_SERVICE_URL not configured")
	}

	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(map[string]any{
			"orderId":  task.Order.ID,
			"customer": task.Order.UserName,
			"email":    task.User.Email,
			"items":    task.Order.Items,
			"summary": map[string]float64{
				"subtotal":    task.Order.Subtotal,
				"tax":         task.Order.Tax,
				"deliveryFee": task.Order.DeliveryFee,
				"total":       task.Order.Total,
			},
		}).
		Post(n.invoiceServiceURL)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("invoice service returned %d: %s", resp.StatusCode(), resp.Body())
	}
	return nil
}

func logTaskResult(result TaskResult) {
	if result.Err != nil {
		log.Printf("%s notification for order #%d failed: %v", result.Task.Kind, result.Task.Order.ID, result.Err)
		return
	}
	log.Printf("%s notification for order #%d sent", result.Task.Kind, result.Task.Order.ID)
}

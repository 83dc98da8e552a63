package service

// Notifier 推送通道发布端。Publish 无返回值，推送失败不上抛到业务操作。
type Notifier interface {
	Publish(channel, event string, payload any)
}

// NopNotifier 无推送场景（测试 / 工具）用
type NopNotifier struct{}

func (NopNotifier) Publish(string, string, any) {}

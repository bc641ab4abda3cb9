package service

import (
	"sync"
	"time"
)

// Countdown は一時停止できるカウントダウンタイマー。
// tick ごとに残り時間を減らし onTick を呼び、0になったら onExpire を一度だけ呼ぶ。
type Countdown struct {
	mu        sync.Mutex
	remaining time.Duration
	interval  time.Duration
	onTick    func(remaining time.Duration)
	onExpire  func()
	running   bool
	expired   bool
	stop      chan struct{}
}

func NewCountdown(total, interval time.Duration, onTick func(time.Duration), onExpire func()) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		remaining: total,
		interval:  interval,
		onTick:    onTick,
		onExpire:  onExpire,
	}
}

// Start はタイマーを動かす。動作中・終了済みなら何もしない。
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || c.expired {
		return
	}
	if c.remaining <= 0 {
		c.expired = true
		go c.fireExpire()
		return
	}
	c.running = true
	c.stop = make(chan struct{})
	go c.loop(c.stop)
}

func (c *Countdown) loop(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			// Pause 直後に Start された場合、古いループはここで抜ける
			if !c.running || c.stop != stop {
				c.mu.Unlock()
				return
			}
			c.remaining -= c.interval
			if c.remaining < 0 {
				c.remaining = 0
			}
			remaining := c.remaining
			finished := remaining == 0
			if finished {
				c.running = false
				c.expired = true
			}
			c.mu.Unlock()

			if c.onTick != nil {
				c.onTick(remaining)
			}
			if finished {
				c.fireExpire()
				return
			}
		}
	}
}

func (c *Countdown) fireExpire() {
	if c.onExpire != nil {
		c.onExpire()
	}
}

// Pause はタイマーを止める。残り時間は保持される。
func (c *Countdown) Pause() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	stop := c.stop
	c.mu.Unlock()
	close(stop)
}

// Toggle は一時停止と再開を切り替え、切り替え後に動作中かを返す
func (c *Countdown) Toggle() bool {
	if c.Running() {
		c.Pause()
		return false
	}
	c.Start()
	return c.Running()
}

// Stop はタイマーを終了させる。onExpire は呼ばれない。何度呼んでも安全。
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.expired = true
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	stop := c.stop
	c.mu.Unlock()
	close(stop)
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

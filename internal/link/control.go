package link

import (
	"context"
	"crypto/rand"
	"fmt"

	"go.uber.org/zap"
)

// Controller performs state-changing operations on interfaces via ip, iw,
// and systemctl. Every operation requires root or CAP_NET_ADMIN.
type Controller struct {
	runner Runner
	logger *zap.Logger
}

// NewController creates a Controller over the given runner.
func NewController(runner Runner, logger *zap.Logger) *Controller {
	return &Controller{runner: runner, logger: logger}
}

// BringUp enables the named interface.
func (c *Controller) BringUp(ctx context.Context, name string) error {
	if _, err := c.runner.Run(ctx, "ip", "link", "set", name, "up"); err != nil {
		return fmt.Errorf("bring up %s: %w", name, err)
	}
	return nil
}

// BringDown disables the named interface.
func (c *Controller) BringDown(ctx context.Context, name string) error {
	if _, err := c.runner.Run(ctx, "ip", "link", "set", name, "down"); err != nil {
		return fmt.Errorf("bring down %s: %w", name, err)
	}
	return nil
}

// setType switches the wireless operating type with the interface down, then
// brings it back up. The down/up bracketing is required by most drivers.
func (c *Controller) setType(ctx context.Context, name, wifType string) error {
	if err := c.BringDown(ctx, name); err != nil {
		return err
	}
	if _, err := c.runner.Run(ctx, "iw", "dev", name, "set", "type", wifType); err != nil {
		return fmt.Errorf("set %s type on %s: %w", wifType, name, err)
	}
	return c.BringUp(ctx, name)
}

// EnableMonitorMode puts the interface into monitor mode.
func (c *Controller) EnableMonitorMode(ctx context.Context, name string) error {
	c.logger.Info("enabling monitor mode", zap.String("interface", name))
	return c.setType(ctx, name, "monitor")
}

// DisableMonitorMode restores the interface to managed mode.
func (c *Controller) DisableMonitorMode(ctx context.Context, name string) error {
	c.logger.Info("disabling monitor mode", zap.String("interface", name))
	return c.setType(ctx, name, "managed")
}

// Rename renames an interface. The interface comes back up under the new name.
func (c *Controller) Rename(ctx context.Context, name, newName string) error {
	if err := c.BringDown(ctx, name); err != nil {
		return err
	}
	if _, err := c.runner.Run(ctx, "ip", "link", "set", name, "name", newName); err != nil {
		return fmt.Errorf("rename %s to %s: %w", name, newName, err)
	}
	return c.BringUp(ctx, newName)
}

// SetMAC changes the hardware address of an interface.
func (c *Controller) SetMAC(ctx context.Context, name, mac string) error {
	if err := c.BringDown(ctx, name); err != nil {
		return err
	}
	if _, err := c.runner.Run(ctx, "ip", "link", "set", name, "address", mac); err != nil {
		return fmt.Errorf("set mac on %s: %w", name, err)
	}
	c.logger.Info("mac address changed", zap.String("interface", name), zap.String("mac", mac))
	return c.BringUp(ctx, name)
}

// SetChannel tunes a wireless interface to the given channel.
func (c *Controller) SetChannel(ctx context.Context, name string, channel int) error {
	if _, err := c.runner.Run(ctx, "iw", "dev", name, "set", "channel", fmt.Sprintf("%d", channel)); err != nil {
		return fmt.Errorf("set channel %d on %s: %w", channel, name, err)
	}
	return nil
}

// RestartNetworkManager restarts the NetworkManager service.
func (c *Controller) RestartNetworkManager(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "systemctl", "restart", "NetworkManager"); err != nil {
		return fmt.Errorf("restart NetworkManager: %w", err)
	}
	return nil
}

// RandomMAC generates a locally-administered unicast MAC address. The first
// octet has the unicast bit clear and the locally-administered bit set, the
// same convention phones use for MAC randomization.
func RandomMAC() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		return "02:00:00:00:00:01"
	}
	b[0] = (b[0] & 0xFC) | 0x02
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}

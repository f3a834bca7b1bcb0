package aolab

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying camera. Yaw and Pitch are in degrees; Pitch is
// clamped short of the poles.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	FovDeg float32
	Near   float32
	Far    float32

	Speed       float32
	Sensitivity float32

	move mgl32.Vec3
	look mgl32.Vec2
}

type CameraModule struct{}

func (m CameraModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Camera{
		Position:    mgl32.Vec3{0, 3, 6},
		Yaw:         0,
		Pitch:       -25,
		FovDeg:      90,
		Near:        0.1,
		Far:         100,
		Speed:       5.0,
		Sensitivity: 0.1,
	})
	app.UseSystem(System(cameraInputSystem).InStage(Update))
	app.UseSystem(System(cameraControlSystem).InStage(Update))
}

func (c *Camera) Forward() mgl32.Vec3 {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(-math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovDeg), aspect, c.Near, c.Far)
}

func cameraInputSystem(input *Input, cam *Camera, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Quit()
		return
	}
	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
	}

	cam.move = mgl32.Vec3{0, 0, 0}
	if input.Pressed[KeyW] {
		cam.move[2] += 1
	}
	if input.Pressed[KeyS] {
		cam.move[2] -= 1
	}
	if input.Pressed[KeyA] {
		cam.move[0] -= 1
	}
	if input.Pressed[KeyD] {
		cam.move[0] += 1
	}
	if input.Pressed[KeyE] {
		cam.move[1] += 1
	}
	if input.Pressed[KeyQ] {
		cam.move[1] -= 1
	}

	if input.MouseCaptured {
		cam.look[0] = float32(input.MouseDeltaX)
		cam.look[1] = float32(input.MouseDeltaY)
	} else {
		cam.look[0] = 0
		cam.look[1] = 0
	}
}

func cameraControlSystem(cam *Camera, time *Time) {
	dt := float32(time.Dt.Seconds())
	if dt <= 0 {
		return
	}

	// 1. Rotation
	cam.Yaw += cam.look[0] * cam.Sensitivity
	cam.Pitch -= cam.look[1] * cam.Sensitivity

	if cam.Pitch > 89.0 {
		cam.Pitch = 89.0
	}
	if cam.Pitch < -89.0 {
		cam.Pitch = -89.0
	}

	// 2. Movement
	forward := cam.Forward()
	right := cam.Right()
	up := mgl32.Vec3{0, 1, 0}

	moveDir := mgl32.Vec3{0, 0, 0}
	moveDir = moveDir.Add(right.Mul(cam.move[0]))
	moveDir = moveDir.Add(up.Mul(cam.move[1]))
	moveDir = moveDir.Add(forward.Mul(cam.move[2]))

	if moveDir.Len() > 0 {
		cam.Position = cam.Position.Add(moveDir.Normalize().Mul(cam.Speed * dt))
	}
}

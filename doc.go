// Package bubbo is the application shell of a space bubble shooter built on
// [Ebitengine].
//
// The shell reads its configuration from the environment, builds the
// service graph with a wire injector and runs the navigator, the ticker and
// the audio service from a single [ebiten.Game]:
//
//	cfg, err := bubbo.ParseConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	app, err := bubbo.InitializeApp(cfg, assetsFS)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//	if err := app.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	ebiten.RunGame(app)
//
// Gameplay lives in the game package, screens in screens, and the
// screen/overlay stack in navigation.
//
// [Ebitengine]: https://ebitengine.org
package bubbo
